package highlight

import "strings"

// Shared pattern fragments.
const (
	exprDoubleQuoted = `"(?:[^"\\\n]|\\.)*"`
	exprSingleQuoted = `'(?:[^'\\\n]|\\.)*'`
	exprBacktick     = "`[^`]*`"
	exprLineComment  = `//[^\n]*`
	exprHashComment  = `#[^\n]*`
	exprBlockComment = `/\*[\s\S]*?\*/`
	exprNumber       = `\b(?:0x[0-9a-f_]+|0b[01_]+|0o[0-7_]+|\d[\d_]*(?:\.\d[\d_]*)?(?:e[+-]?\d+)?)\b`
	exprFunctionCall = `\b[a-z_]\w*(?=\s*\()`
	exprIdentifier   = `\b[a-z_]\w*\b`
	exprOperator     = `[-+*/%=&|^!<>~?:]+`
	exprPunctuation  = `[{}()\[\];,.]`
)

func words(list ...string) string {
	return `\b(?:` + strings.Join(list, "|") + `)\b`
}

func cFamily(keywords, builtins, types, constants string, extra ...Pattern) []Pattern {
	patterns := []Pattern{
		{TypeComment, exprBlockComment},
		{TypeComment, exprLineComment},
	}
	patterns = append(patterns, extra...)
	patterns = append(patterns,
		Pattern{TypeString, exprDoubleQuoted},
		Pattern{TypeString, exprSingleQuoted},
		Pattern{TypeNumber, exprNumber},
		Pattern{TypeKeyword, keywords},
	)
	if builtins != "" {
		patterns = append(patterns, Pattern{TypeBuiltin, builtins})
	}
	if types != "" {
		patterns = append(patterns, Pattern{TypeType, types})
	}
	if constants != "" {
		patterns = append(patterns, Pattern{TypeConstant, constants})
	}
	return append(patterns,
		Pattern{TypeFunction, exprFunctionCall},
		Pattern{TypeIdentifier, exprIdentifier},
		Pattern{TypeOperator, exprOperator},
		Pattern{TypePunctuation, exprPunctuation},
	)
}

//nolint:gochecknoglobals // Read-only lookup table.
var jsKeywords = []string{
	"break", "case", "catch", "class", "const", "continue", "debugger", "default", "delete",
	"do", "else", "export", "extends", "finally", "for", "function", "if", "import", "in",
	"instanceof", "let", "new", "return", "super", "switch", "this", "throw", "try", "typeof",
	"var", "void", "while", "with", "yield", "async", "await", "of", "static", "get", "set", "from",
}

func javascriptPatterns(extraKeywords ...string) []Pattern {
	keywords := words(append(append([]string{}, jsKeywords...), extraKeywords...)...)
	return cFamily(
		keywords,
		words("console", "window", "document", "Math", "JSON", "Promise", "Object", "Array",
			"String", "Number", "Boolean", "Symbol", "Map", "Set", "Error", "require", "module"),
		"",
		words("true", "false", "null", "undefined", "NaN", "Infinity"),
		Pattern{TypeString, exprBacktick},
		Pattern{TypeString, `/(?![*/])(?:[^/\\\n\[]|\\.|\[(?:[^\]\\\n]|\\.)*\])+/[gimsuy]*(?=\s*[.,;)\]}]|\s*$)`},
	)
}

// BuiltinRules returns the rules of the built-in languages.
func BuiltinRules() []Rule {
	return []Rule{
		{
			Name:    "go",
			Aliases: []string{"golang"},
			Patterns: cFamily(
				words("break", "case", "chan", "const", "continue", "default", "defer", "else",
					"fallthrough", "for", "func", "go", "goto", "if", "import", "interface", "map",
					"package", "range", "return", "select", "struct", "switch", "type", "var"),
				words("append", "cap", "clear", "close", "complex", "copy", "delete", "imag", "len",
					"make", "max", "min", "new", "panic", "print", "println", "real", "recover"),
				words("any", "bool", "byte", "comparable", "complex64", "complex128", "error",
					"float32", "float64", "int", "int8", "int16", "int32", "int64", "rune", "string",
					"uint", "uint8", "uint16", "uint32", "uint64", "uintptr"),
				words("true", "false", "nil", "iota"),
				Pattern{TypeString, exprBacktick},
			),
		},
		{
			Name:     "javascript",
			Aliases:  []string{"js", "jsx", "mjs", "cjs"},
			Patterns: javascriptPatterns(),
		},
		{
			Name:    "typescript",
			Aliases: []string{"ts", "tsx"},
			Patterns: javascriptPatterns("interface", "type", "enum", "implements", "declare",
				"readonly", "abstract", "namespace", "as", "keyof", "private", "protected", "public",
				"any", "unknown", "never", "number", "string", "boolean"),
		},
		{
			Name:    "python",
			Aliases: []string{"py", "python3"},
			Patterns: []Pattern{
				{TypeComment, exprHashComment},
				{TypeString, `(?:[rbuf]{0,2})"""[\s\S]*?"""`},
				{TypeString, `(?:[rbuf]{0,2})'''[\s\S]*?'''`},
				{TypeString, `(?:[rbuf]{0,2})` + exprDoubleQuoted},
				{TypeString, `(?:[rbuf]{0,2})` + exprSingleQuoted},
				{TypeDecorator, `^[ \t]*@[\w.]+`},
				{TypeNumber, exprNumber},
				{TypeKeyword, words("and", "as", "assert", "async", "await", "break", "class",
					"continue", "def", "del", "elif", "else", "except", "finally", "for", "from",
					"global", "if", "import", "in", "is", "lambda", "nonlocal", "not", "or", "pass",
					"raise", "return", "try", "while", "with", "yield", "match", "case")},
				{TypeBuiltin, words("print", "len", "range", "str", "int", "float", "list", "dict",
					"set", "tuple", "open", "isinstance", "super", "self", "enumerate", "zip", "map",
					"filter", "sorted", "type", "object", "Exception")},
				{TypeConstant, words("True", "False", "None")},
				{TypeFunction, exprFunctionCall},
				{TypeIdentifier, exprIdentifier},
				{TypeOperator, exprOperator},
				{TypePunctuation, exprPunctuation},
			},
		},
		{
			Name: "json",
			Patterns: []Pattern{
				{TypeProperty, exprDoubleQuoted + `(?=\s*:)`},
				{TypeString, exprDoubleQuoted},
				{TypeNumber, `-?\b\d+(?:\.\d+)?(?:e[+-]?\d+)?\b`},
				{TypeConstant, words("true", "false", "null")},
				{TypePunctuation, `[{}\[\]:,]`},
			},
		},
		{
			Name:    "yaml",
			Aliases: []string{"yml"},
			Patterns: []Pattern{
				{TypeComment, `(?<=^|\s)#[^\n]*`},
				{TypeKeyword, `^(?:---|\.\.\.)(?=\s|$)`},
				{TypeProperty, `[\w.-]+(?=[ \t]*:(?:\s|$))`},
				{TypeString, exprDoubleQuoted},
				{TypeString, exprSingleQuoted},
				{TypeVariable, `[&*][\w-]+`},
				{TypeConstant, words("true", "false", "null", "yes", "no", "on", "off")},
				{TypeNumber, `-?\b\d+(?:\.\d+)?\b`},
				{TypePunctuation, `[:\-\[\]{},|>?]`},
			},
		},
		{
			Name:    "css",
			Aliases: []string{"scss", "less"},
			Patterns: []Pattern{
				{TypeComment, exprBlockComment},
				{TypeString, exprDoubleQuoted},
				{TypeString, exprSingleQuoted},
				{TypeKeyword, `@[\w-]+`},
				{TypeConstant, `#[0-9a-f]{3,8}\b`},
				{TypeProperty, `[\w-]+(?=\s*:[^{;]*[;}])`},
				{TypeNumber, `-?(?:\d*\.)?\d+(?:px|em|rem|%|vh|vw|s|ms|deg|fr)?\b`},
				{TypeAttribute, `[.#][a-z_-][\w-]*`},
				{TypeTag, `\b[a-z][\w-]*(?=[^{};]*\{)`},
				{TypeKeyword, `!important`},
				{TypeFunction, exprFunctionCall},
				{TypePunctuation, `[{}():;,>+~*]`},
			},
		},
		{
			Name:    "html",
			Aliases: []string{"htm", "xml", "svg"},
			Patterns: []Pattern{
				{TypeComment, `<!--[\s\S]*?-->`},
				{TypeKeyword, `<!doctype[^>]*>`},
				{TypeTag, `</?[a-z][\w:-]*`},
				{TypeAttribute, `\b[a-z_:][\w:.-]*(?=\s*=)`},
				{TypeString, exprDoubleQuoted},
				{TypeString, exprSingleQuoted},
				{TypeConstant, `&#?\w+;`},
				{TypeTag, `/?>`},
			},
		},
		{
			Name:    "markdown",
			Aliases: []string{"md", "mdx"},
			Patterns: []Pattern{
				{TypeCode, "^[ \t]*```[\\s\\S]*?^[ \t]*```"},
				{TypeHeading, `^#{1,6}[ \t][^\n]*`},
				{TypeCode, "`[^`\\n]+`"},
				{TypeStrong, `\*\*[^*\n]+\*\*|__[^_\n]+__`},
				{TypeEmphasis, `(?<![*\w])\*[^*\n]+\*(?!\*)|(?<!\w)_[^_\n]+_(?!\w)`},
				{TypeLink, `!?\[[^\]\n]*\]\([^)\n]*\)`},
				{TypeKeyword, `^[ \t]*(?:[-*+]|\d+[.)])(?=[ \t])`},
				{TypeComment, `^[ \t]*>[^\n]*`},
			},
		},
		{
			Name:    "shell",
			Aliases: []string{"sh", "bash", "zsh", "shellscript"},
			Patterns: []Pattern{
				{TypeComment, `(?<=^|\s)#[^\n]*`},
				{TypeString, exprDoubleQuoted},
				{TypeString, `'[^']*'`},
				{TypeVariable, `\$\{[^}\n]*\}|\$\w+|\$[@#?$!*0-9-]`},
				{TypeKeyword, words("if", "then", "else", "elif", "fi", "for", "do", "done", "case",
					"esac", "while", "until", "function", "in", "return", "export", "local",
					"select", "time")},
				{TypeBuiltin, words("echo", "cd", "printf", "read", "set", "unset", "source",
					"exit", "test", "shift", "eval", "exec", "trap", "alias", "pwd")},
				{TypeNumber, `\b\d+\b`},
				{TypeOperator, `&&|\|\||[|&;<>]+`},
				{TypePunctuation, `[{}()\[\]]`},
			},
		},
		{
			Name:    "sql",
			Aliases: []string{"mysql", "postgres", "sqlite"},
			Patterns: []Pattern{
				{TypeComment, `--[^\n]*`},
				{TypeComment, exprBlockComment},
				{TypeString, `'(?:[^']|'')*'`},
				{TypeProperty, exprDoubleQuoted},
				{TypeNumber, exprNumber},
				{TypeKeyword, words("select", "from", "where", "insert", "into", "values", "update",
					"set", "delete", "create", "table", "drop", "alter", "index", "join", "left",
					"right", "inner", "outer", "on", "as", "and", "or", "not", "null", "is", "in",
					"group", "by", "order", "having", "limit", "offset", "distinct", "union", "all",
					"primary", "key", "foreign", "references", "default", "case", "when", "then",
					"else", "end", "exists", "like", "between", "asc", "desc")},
				{TypeBuiltin, words("count", "sum", "avg", "min", "max", "coalesce", "now",
					"lower", "upper")},
				{TypeType, words("int", "integer", "bigint", "text", "varchar", "char", "boolean",
					"date", "timestamp", "numeric", "real", "serial", "blob")},
				{TypeIdentifier, exprIdentifier},
				{TypeOperator, `[-+*/%=<>!|]+`},
				{TypePunctuation, `[(),;.]`},
			},
		},
		{
			Name:    "rust",
			Aliases: []string{"rs"},
			Patterns: cFamily(
				words("as", "async", "await", "break", "const", "continue", "crate", "dyn", "else",
					"enum", "extern", "fn", "for", "if", "impl", "in", "let", "loop", "match", "mod",
					"move", "mut", "pub", "ref", "return", "self", "Self", "static", "struct",
					"super", "trait", "type", "unsafe", "use", "where", "while"),
				`\b\w+!(?!=)`,
				words("i8", "i16", "i32", "i64", "i128", "isize", "u8", "u16", "u32", "u64",
					"u128", "usize", "f32", "f64", "bool", "char", "str", "String", "Vec",
					"Option", "Result", "Box"),
				words("true", "false", "None", "Some", "Ok", "Err"),
				Pattern{TypeVariable, `'[a-z_]\w*\b(?!')`},
				Pattern{TypeDecorator, `#!?\[[^\]\n]*\]`},
			),
		},
		{
			Name:    "java",
			Aliases: []string{"kotlin"},
			Patterns: cFamily(
				words("abstract", "assert", "break", "case", "catch", "class", "continue",
					"default", "do", "else", "enum", "extends", "final", "finally", "for", "if",
					"implements", "import", "instanceof", "interface", "native", "new", "package",
					"private", "protected", "public", "return", "static", "super", "switch",
					"synchronized", "this", "throw", "throws", "try", "void", "volatile", "while",
					"var", "record"),
				words("System", "String", "Object", "Integer", "List", "Map", "Math"),
				words("boolean", "byte", "char", "double", "float", "int", "long", "short"),
				words("true", "false", "null"),
				Pattern{TypeDecorator, `@\w+`},
			),
		},
		{
			Name:    "c",
			Aliases: []string{"h"},
			Patterns: cFamily(
				words("auto", "break", "case", "const", "continue", "default", "do", "else", "enum",
					"extern", "for", "goto", "if", "inline", "register", "restrict", "return",
					"sizeof", "static", "struct", "switch", "typedef", "union", "volatile", "while"),
				words("printf", "malloc", "free", "memcpy", "memset", "strlen", "sizeof"),
				words("char", "double", "float", "int", "long", "short", "signed", "unsigned",
					"void", "size_t", "bool"),
				words("true", "false", "NULL"),
				Pattern{TypePreprocessor, `^[ \t]*#[ \t]*\w+[^\n]*`},
			),
		},
		{
			Name:    "cpp",
			Aliases: []string{"c++", "cc", "cxx", "hpp"},
			Patterns: cFamily(
				words("alignas", "auto", "break", "case", "catch", "class", "const", "constexpr",
					"continue", "default", "delete", "do", "else", "enum", "explicit", "extern",
					"for", "friend", "goto", "if", "inline", "mutable", "namespace", "new",
					"noexcept", "operator", "override", "private", "protected", "public", "return",
					"sizeof", "static", "struct", "switch", "template", "this", "throw", "try",
					"typedef", "typename", "union", "using", "virtual", "volatile", "while"),
				words("std", "cout", "cin", "endl", "vector", "string", "map", "unique_ptr",
					"shared_ptr", "make_unique", "make_shared"),
				words("bool", "char", "double", "float", "int", "long", "short", "signed",
					"unsigned", "void", "size_t", "wchar_t"),
				words("true", "false", "nullptr", "NULL"),
				Pattern{TypePreprocessor, `^[ \t]*#[ \t]*\w+[^\n]*`},
			),
		},
	}
}
