package highlighter

import (
	"embed"
	"sync"

	gosrc "github.com/smacker/go-tree-sitter/golang"
	jssrc "github.com/smacker/go-tree-sitter/javascript"
	pythonsrc "github.com/smacker/go-tree-sitter/python"
	rustsrc "github.com/smacker/go-tree-sitter/rust"

	"github.com/bethropolis/quill/internal/highlighter/lang"
	"github.com/bethropolis/quill/internal/logger"
)

//go:embed queries/*/*.scm
var embeddedQueries embed.FS

var registerOnce sync.Once

// RegisterLanguages fills the language registry with the built-in grammars.
// It is safe to call more than once.
func RegisterLanguages() {
	registerOnce.Do(func() {
		lang.QueryFS = embeddedQueries

		lang.Register(&lang.Language{
			Name:           "Go",
			TreeSitterLang: gosrc.GetLanguage(),
			Aliases:        []string{"go", "golang"},
			QueryPath:      "go",
		})
		lang.Register(&lang.Language{
			Name:           "Python",
			TreeSitterLang: pythonsrc.GetLanguage(),
			Aliases:        []string{"python", "py", "python3"},
			QueryPath:      "python",
		})
		lang.Register(&lang.Language{
			Name:           "JavaScript",
			TreeSitterLang: jssrc.GetLanguage(),
			Aliases:        []string{"javascript", "js", "mjs", "node"},
			QueryPath:      "javascript",
		})
		lang.Register(&lang.Language{
			Name:           "Rust",
			TreeSitterLang: rustsrc.GetLanguage(),
			Aliases:        []string{"rust", "rs"},
			QueryPath:      "rust",
		})

		logger.DebugTagf("highlight", "Registration complete. Registered %d languages.", len(lang.GetAll()))
	})
}
