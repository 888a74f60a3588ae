package dependencies

import "slices"

// Kind discriminates the dependency variants.
type Kind int

const (
	KindValue Kind = iota + 1
	KindDiscover
	KindPrompt
	KindDiscoverAndPrompt
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindDiscover:
		return "discover"
	case KindPrompt:
		return "prompt"
	case KindDiscoverAndPrompt:
		return "discoverAndPrompt"
	default:
		return "unknown"
	}
}

// DiscoverType selects what a discover dependency looks for.
type DiscoverType string

const (
	DiscoverNamespace            DiscoverType = "namespace"
	DiscoverMultipleFiles        DiscoverType = "multipleFiles"
	DiscoverFile                 DiscoverType = "file"
	DiscoverFileContent          DiscoverType = "fileContent"
	DiscoverMultipleFileContents DiscoverType = "multipleFileContents"
)

// DiscoverTypes is the closed set of supported discover types.
var DiscoverTypes = []DiscoverType{
	DiscoverNamespace,
	DiscoverMultipleFiles,
	DiscoverFile,
	DiscoverFileContent,
	DiscoverMultipleFileContents,
}

// Valid reports whether t is one of DiscoverTypes.
func (t DiscoverType) Valid() bool { return slices.Contains(DiscoverTypes, t) }

// MatchesFiles reports whether discovering t requires a fileMatch pattern.
func (t DiscoverType) MatchesFiles() bool {
	switch t {
	case DiscoverMultipleFiles, DiscoverFile, DiscoverFileContent, DiscoverMultipleFileContents:
		return true
	}
	return false
}

// MatchesContent reports whether discovering t requires a contentMatch pattern.
func (t DiscoverType) MatchesContent() bool {
	return t == DiscoverFileContent || t == DiscoverMultipleFileContents
}

// UserInputType selects how a prompt dependency obtains its value.
type UserInputType string

const (
	InputArgument       UserInputType = "argument"
	InputText           UserInputType = "input"
	InputConfirm        UserInputType = "confirm"
	InputChooseOne      UserInputType = "chooseOne"
	InputChooseMultiple UserInputType = "chooseMultiple"
)

// UserInputTypes is the closed set of supported user input types.
var UserInputTypes = []UserInputType{
	InputArgument,
	InputText,
	InputConfirm,
	InputChooseOne,
	InputChooseMultiple,
}

// Valid reports whether t is one of UserInputTypes.
func (t UserInputType) Valid() bool { return slices.Contains(UserInputTypes, t) }

// Chooses reports whether t selects among choices.
func (t UserInputType) Chooses() bool {
	return t == InputChooseOne || t == InputChooseMultiple
}

// Areas is the closed set of area names a discover dependency may start from.
var Areas = []string{"concepts", "domain", "events", "read"}

// IsValidArea reports whether area is one of Areas.
func IsValidArea(area string) bool { return slices.Contains(Areas, area) }
