package normalize

// ReservedNames are identifiers GenerateMetanames must not hand out
// unprefixed: Go's keywords, plus a few further names, among them
// "parser", the receiver name of every recognizer method codegen emits.
var ReservedNames = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,

	"current":  true,
	"position": true,
	"start":    true,
	"engine":   true,
	"parser":   true,
	"rule":     true,
}
