package profile

import "sort"

// Top-level document keys recognized by the schema convention.
const (
	KeyImplementationVersion = "implementationVersion"
	KeyDisplayName           = "displayName"
	KeyDocumentationURL      = "documentationUrl"
	KeyMIDIChannels          = "midiChannels"
	KeyReceives              = "receives"
	KeyTransmits             = "transmits"
	KeyControlChangeCommands = "controlChangeCommands"
	KeyNRPNCommands          = "nrpnCommands"
	KeyProgramChange         = "x_pc"
)

// canonicalKeyOrder is the fixed top-level key order produced by the fix
// transformation: metadata, capabilities, command tables, extensions.
// Unrecognized keys follow in their original order.
var canonicalKeyOrder = []string{
	KeyImplementationVersion,
	KeyDisplayName,
	KeyDocumentationURL,
	KeyMIDIChannels,
	KeyReceives,
	KeyTransmits,
	KeyControlChangeCommands,
	KeyNRPNCommands,
	KeyProgramChange,
}

// CanonicalKeyOrder returns the canonical top-level key order.
func CanonicalKeyOrder() []string {
	out := make([]string, len(canonicalKeyOrder))
	copy(out, canonicalKeyOrder)
	return out
}

// aliasCCKeys are deprecated spellings of the control change table key.
// They are reported as errors; the fix renames them to the canonical key
// when the canonical key is absent.
var aliasCCKeys = []string{"controls", "controlChangeMessages"}

// AliasCCKeys returns the deprecated control change key spellings.
func AliasCCKeys() []string {
	out := make([]string, len(aliasCCKeys))
	copy(out, aliasCCKeys)
	return out
}

// Control change number bounds (7-bit MIDI controller index).
const (
	CCNumberMin = 0
	CCNumberMax = 127
)

// Message-type tokens valid in receives/transmits.
const (
	MsgProgramChange   = "PROGRAM_CHANGE"
	MsgControlChange   = "CONTROL_CHANGE"
	MsgNoteNumber      = "NOTE_NUMBER"
	MsgPitchBend       = "PITCH_BEND"
	MsgChannelPressure = "CHANNEL_PRESSURE"
	MsgPolyPressure    = "POLY_PRESSURE"
	MsgClock           = "CLOCK"
	MsgTransport       = "TRANSPORT"
	MsgSongPosition    = "SONG_POSITION"
	MsgNRPN            = "NRPN"
	MsgSysEx           = "SYSEX"
)

var validMessages = map[string]struct{}{
	MsgProgramChange:   {},
	MsgControlChange:   {},
	MsgNoteNumber:      {},
	MsgPitchBend:       {},
	MsgChannelPressure: {},
	MsgPolyPressure:    {},
	MsgClock:           {},
	MsgTransport:       {},
	MsgSongPosition:    {},
	MsgNRPN:            {},
	MsgSysEx:           {},
}

// messageReplacements maps deprecated tokens to their canonical equivalents.
var messageReplacements = map[string]string{
	"NOTE_ON":    MsgNoteNumber,
	"NOTE_OFF":   MsgNoteNumber,
	"PC":         MsgProgramChange,
	"CC":         MsgControlChange,
	"MIDI_CLOCK": MsgClock,
}

// removedMessages are deprecated combined markers with no single-token
// equivalent. The fix removes them outright.
var removedMessages = map[string]struct{}{
	"CONTROL_CHANGE_SYSEX": {},
	"NOTE_ON_OFF":          {},
}

// IsValidMessage returns true if the token belongs to the valid vocabulary.
func IsValidMessage(token string) bool {
	_, ok := validMessages[token]
	return ok
}

// ReplacementFor returns the canonical replacement for a deprecated token.
func ReplacementFor(token string) (string, bool) {
	repl, ok := messageReplacements[token]
	return repl, ok
}

// IsRemovedMessage returns true if the token is deprecated with no
// replacement and must be removed.
func IsRemovedMessage(token string) bool {
	_, ok := removedMessages[token]
	return ok
}

// IsDeprecatedMessage returns true if the token is deprecated, whether it
// has a replacement or not.
func IsDeprecatedMessage(token string) bool {
	if _, ok := messageReplacements[token]; ok {
		return true
	}
	return IsRemovedMessage(token)
}

// ValidMessages returns the valid vocabulary in sorted order.
func ValidMessages() []string {
	out := make([]string, 0, len(validMessages))
	for tok := range validMessages {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// Bank select modes for program change configuration.
const (
	BankSelectNone    = "none"
	BankSelectCC0     = "cc0"
	BankSelectCC32    = "cc32"
	BankSelectCC0CC32 = "cc0+cc32"
)

// IsValidBankSelect returns true if the value is a recognized bank select mode.
func IsValidBankSelect(value string) bool {
	switch value {
	case BankSelectNone, BankSelectCC0, BankSelectCC32, BankSelectCC0CC32:
		return true
	}
	return false
}

// MessageList is the decoded view of a receives/transmits key.
type MessageList struct {
	// Present is true if the key exists in the document.
	Present bool

	// IsArray is true if the value is a JSON array.
	IsArray bool

	// Tokens contains the string elements in document order.
	Tokens []string

	// NonStringCount counts array elements that are not strings.
	NonStringCount int
}

// ValueRange is the decoded view of a CC entry's valueRange object.
type ValueRange struct {
	// IsObject is true if the value is a JSON object.
	IsObject bool

	HasMin bool
	// MinOK is true if min is numeric.
	MinOK bool
	Min   float64

	HasMax bool
	// MaxOK is true if max is numeric.
	MaxOK bool
	Max   float64

	HasDiscrete bool
	// DiscreteIsArray is true if discreteValues is a JSON array.
	DiscreteIsArray bool
}

// CCEntry is the decoded view of one control change table element.
type CCEntry struct {
	// Index is the zero-based position in the table.
	Index int

	// IsObject is true if the element is a JSON object.
	IsObject bool

	// HasNumber is true if controlChangeNumber is present.
	HasNumber bool

	// NumberIsInt is true if controlChangeNumber is an integer.
	NumberIsInt bool

	// Number is the controlChangeNumber value when NumberIsInt.
	Number int64

	// HasName is true if name is present and a string.
	HasName bool
	Name    string

	// Range is the decoded valueRange, nil when absent.
	Range *ValueRange
}

// ProgramChange is the decoded view of the x_pc extension object.
type ProgramChange struct {
	// IsObject is true if the value is a JSON object.
	IsObject bool

	HasIndexBase   bool
	IndexBaseIsInt bool
	IndexBase      int64

	HasCount   bool
	CountIsInt bool
	Count      int64

	HasNames     bool
	NamesIsArray bool
	NamesCount   int

	HasBankSelect      bool
	BankSelectIsString bool
	BankSelect         string
	// BankSelectIsBool marks the legacy boolean form.
	BankSelectIsBool bool
	BankSelectBool   bool
}

// Profile is the decoded view of one device profile document.
// Shape problems are recorded as flags and reported by validation rules;
// only malformed JSON fails parsing.
type Profile struct {
	// SourceFile is the path the profile was parsed from, if any.
	SourceFile string

	// Doc is the underlying ordered document.
	Doc *Document

	// ImplementationVersion is the normalized version string
	// (numbers are rendered verbatim).
	ImplementationVersion    string
	HasImplementationVersion bool

	Receives  MessageList
	Transmits MessageList

	// CCKeyUsed is the key the control change table was read from:
	// the canonical key, a deprecated alias, or empty when absent.
	CCKeyUsed string

	// CCIsArray is true if the control change table is a JSON array.
	CCIsArray bool

	// CC contains the decoded table entries.
	CC []CCEntry

	// NRPNCount is the number of nrpnCommands entries.
	NRPNCount int
	HasNRPN   bool

	// PC is the decoded x_pc object, nil when absent.
	PC *ProgramChange
}

// UsesAliasCCKey returns true if the control change table was found under a
// deprecated alias key.
func (p *Profile) UsesAliasCCKey() bool {
	return p.CCKeyUsed != "" && p.CCKeyUsed != KeyControlChangeCommands
}
