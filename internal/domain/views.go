package domain

// ViewID identifies one navigable view in the shell.
type ViewID string

const (
	ViewHome            ViewID = "home"
	ViewTranscription   ViewID = "transcription"
	ViewVoiceGeneration ViewID = "voice-generation"
	ViewParsing         ViewID = "parsing"
	ViewSpellChecking   ViewID = "spell-checking"
	ViewForcedAlignment ViewID = "forced-alignment"
	ViewAbout           ViewID = "about"
)

// View describes one entry in the top navigation.
type View struct {
	ID          ViewID `json:"id"`
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Placeholder bool   `json:"placeholder"`
}

// Views returns the fixed, ordered navigation catalog. The first entry
// is the default active view.
func Views() []View {
	return []View{
		{ID: ViewHome, Title: "Home", Icon: "house"},
		{ID: ViewTranscription, Title: "Transcription", Icon: "mic"},
		{ID: ViewVoiceGeneration, Title: "Voice Generation", Icon: "volume-up"},
		{ID: ViewParsing, Title: "Parsing", Icon: "file-earmark-text", Placeholder: true},
		{ID: ViewSpellChecking, Title: "Spell Checking", Icon: "spellcheck", Placeholder: true},
		{ID: ViewForcedAlignment, Title: "Forced Alignment", Icon: "soundwave", Placeholder: true},
		{ID: ViewAbout, Title: "About", Icon: "info-circle"},
	}
}

// Glyphs returns the special characters of Cook Islands Māori
// orthography offered as one-click append buttons: the macron vowels
// and the glottal-stop marker.
func Glyphs() []string {
	return []string{"ā", "ē", "ī", "ō", "ū", "ꞌ"}
}
