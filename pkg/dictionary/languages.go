package dictionary

import (
	"path/filepath"
	"strings"
)

// Language describes a document language id, the file extensions that map
// to it and the reserved words that must not be reported in its documents.
type Language struct {
	ID             string
	Name           string
	FileExtensions []string
	Code           bool
	Keywords       []string
}

// GetSupportedLanguages returns the known languages.
func GetSupportedLanguages() []Language {
	return []Language{
		{
			ID:             "go",
			Name:           "Go",
			FileExtensions: []string{".go"},
			Code:           true,
			Keywords: []string{
				"break", "case", "chan", "const", "continue", "default", "defer", "else",
				"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
				"map", "package", "range", "return", "select", "struct", "switch", "type",
				"var", "append", "cap", "close", "complex", "copy", "delete", "imag",
				"len", "make", "new", "panic", "print", "println", "real", "recover",
				"iota", "nil", "true", "false", "rune", "uintptr", "float", "int",
			},
		},
		{
			ID:             "javascript",
			Name:           "JavaScript",
			FileExtensions: []string{".js", ".jsx", ".mjs", ".cjs"},
			Code:           true,
			Keywords:       javascriptKeywords,
		},
		{
			ID:             "typescript",
			Name:           "TypeScript",
			FileExtensions: []string{".ts", ".tsx", ".mts", ".cts"},
			Code:           true,
			Keywords: append([]string{
				"abstract", "any", "declare", "enum", "implements", "infer", "interface",
				"keyof", "module", "namespace", "never", "private", "protected", "public",
				"readonly", "type", "unknown", "boolean", "number", "string", "symbol",
			}, javascriptKeywords...),
		},
		{
			ID:             "python",
			Name:           "Python",
			FileExtensions: []string{".py", ".pyi"},
			Code:           true,
			Keywords: []string{
				"and", "as", "assert", "async", "await", "break", "class", "continue",
				"def", "del", "elif", "else", "except", "finally", "for", "from", "global",
				"if", "import", "in", "is", "lambda", "nonlocal", "not", "or", "pass",
				"raise", "return", "try", "while", "with", "yield", "none", "true", "false",
				"self", "kwargs", "isinstance", "len", "dict", "tuple", "str", "repr",
				"staticmethod", "classmethod", "elif", "init",
			},
		},
		{
			ID:             "java",
			Name:           "Java",
			FileExtensions: []string{".java"},
			Code:           true,
			Keywords: []string{
				"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char",
				"class", "const", "continue", "default", "do", "double", "else", "enum",
				"extends", "final", "finally", "float", "for", "goto", "if", "implements",
				"import", "instanceof", "int", "interface", "long", "native", "new",
				"package", "private", "protected", "public", "return", "short", "static",
				"strictfp", "super", "switch", "synchronized", "this", "throw", "throws",
				"transient", "try", "void", "volatile", "while", "null", "true", "false",
			},
		},
		{
			ID:             "csharp",
			Name:           "C#",
			FileExtensions: []string{".cs"},
			Code:           true,
			Keywords: []string{
				"abstract", "base", "bool", "byte", "catch", "checked", "class", "const",
				"decimal", "delegate", "double", "enum", "event", "explicit", "extern",
				"finally", "fixed", "foreach", "implicit", "interface", "internal", "lock",
				"namespace", "object", "operator", "override", "params", "readonly", "ref",
				"sbyte", "sealed", "sizeof", "stackalloc", "static", "string", "struct",
				"typeof", "uint", "ulong", "unchecked", "unsafe", "ushort", "using",
				"virtual", "void", "volatile", "async", "await", "nameof", "null", "var",
			},
		},
		{
			ID:             "powershell",
			Name:           "PowerShell",
			FileExtensions: []string{".ps1", ".psm1", ".psd1"},
			Code:           true,
			Keywords: []string{
				"begin", "break", "catch", "class", "continue", "data", "define", "do",
				"dynamicparam", "else", "elseif", "end", "enum", "exit", "filter",
				"finally", "for", "foreach", "from", "function", "hidden", "if", "param",
				"process", "return", "static", "switch", "throw", "trap", "try", "until",
				"using", "var", "while", "cmdlet", "cmdletbinding", "pscustomobject",
				"pipeline", "hashtable", "scriptblock",
			},
		},
		{
			ID:             "latex",
			Name:           "LaTeX",
			FileExtensions: []string{".tex", ".sty", ".cls", ".bib"},
			Code:           true,
			Keywords: []string{
				"documentclass", "usepackage", "begin", "end", "section", "subsection",
				"subsubsection", "chapter", "textbf", "textit", "emph", "itemize",
				"enumerate", "item", "label", "ref", "cite", "bibliography", "maketitle",
				"tableofcontents", "newcommand", "renewcommand", "includegraphics",
				"figure", "tabular", "hline", "vspace", "hspace", "noindent", "mathbb",
				"frac", "sqrt", "equation", "align", "verbatim", "footnote", "centering",
			},
		},
		{
			ID:             "c",
			Name:           "C",
			FileExtensions: []string{".c", ".h"},
			Code:           true,
			Keywords:       cKeywords,
		},
		{
			ID:             "cpp",
			Name:           "C++",
			FileExtensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh"},
			Code:           true,
			Keywords: append([]string{
				"class", "constexpr", "decltype", "delete", "explicit", "friend", "inline",
				"mutable", "namespace", "noexcept", "nullptr", "operator", "private",
				"protected", "public", "template", "this", "throw", "typename", "using",
				"virtual", "std", "cout", "endl", "vector",
			}, cKeywords...),
		},
		{
			ID:             "rust",
			Name:           "Rust",
			FileExtensions: []string{".rs"},
			Code:           true,
			Keywords: []string{
				"as", "async", "await", "break", "const", "continue", "crate", "dyn",
				"else", "enum", "extern", "false", "fn", "for", "if", "impl", "in", "let",
				"loop", "match", "mod", "move", "mut", "pub", "ref", "return", "self",
				"static", "struct", "super", "trait", "true", "type", "unsafe", "use",
				"where", "while", "usize", "isize", "vec", "println",
			},
		},
		{
			ID:             "shellscript",
			Name:           "Shell",
			FileExtensions: []string{".sh", ".bash", ".zsh"},
			Code:           true,
			Keywords: []string{
				"if", "then", "else", "elif", "fi", "case", "esac", "for", "while",
				"until", "do", "done", "function", "select", "local", "export",
				"readonly", "echo", "printf", "shift", "unset", "eval", "exec", "trap",
			},
		},
		{ID: "markdown", Name: "Markdown", FileExtensions: []string{".md", ".markdown"}},
		{ID: "plaintext", Name: "Plain Text", FileExtensions: []string{".txt", ".text"}},
		{ID: "json", Name: "JSON", FileExtensions: []string{".json"}},
		{ID: "jsonc", Name: "JSON with Comments", FileExtensions: []string{".jsonc"}},
		{ID: "yaml", Name: "YAML", FileExtensions: []string{".yaml", ".yml"}},
		{ID: "html", Name: "HTML", FileExtensions: []string{".html", ".htm"}},
	}
}

var javascriptKeywords = []string{
	"async", "await", "break", "case", "catch", "class", "const", "constructor",
	"continue", "debugger", "default", "delete", "do", "else", "export", "extends",
	"finally", "for", "function", "if", "import", "in", "instanceof", "let", "new",
	"null", "of", "prototype", "return", "static", "super", "switch", "this",
	"throw", "try", "typeof", "undefined", "var", "void", "while", "with", "yield",
	"arguments", "console", "document", "window", "require", "module", "exports",
	"promise", "json", "nan", "true", "false",
}

var cKeywords = []string{
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if", "inline",
	"int", "long", "register", "restrict", "return", "short", "signed", "sizeof",
	"static", "struct", "switch", "typedef", "union", "unsigned", "void",
	"volatile", "while", "include", "define", "ifdef", "ifndef", "endif",
	"pragma", "malloc", "free", "printf", "stdio", "stdlib",
}

// GetLanguageByID returns a language by its id.
func GetLanguageByID(id string) (Language, bool) {
	for _, lang := range GetSupportedLanguages() {
		if strings.EqualFold(lang.ID, id) {
			return lang, true
		}
	}
	return Language{}, false
}

// GetLanguageByExtension returns a language by file extension.
func GetLanguageByExtension(ext string) (Language, bool) {
	for _, lang := range GetSupportedLanguages() {
		for _, langExt := range lang.FileExtensions {
			if strings.EqualFold(langExt, ext) {
				return lang, true
			}
		}
	}
	return Language{}, false
}

// LanguageIDForPath returns the language id for a file path, or "plaintext"
// when the extension is not known.
func LanguageIDForPath(path string) string {
	if lang, ok := GetLanguageByExtension(filepath.Ext(path)); ok {
		return lang.ID
	}
	return "plaintext"
}
