package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Convention names accepted in the rules file. The filename heuristics
// are deliberately data, not code: LLM output follows no single
// convention, so the accepted set must stay extensible.
const (
	ConventionCommentPath   = "comment-path"
	ConventionFileDirective = "file-directive"
	ConventionHintLine      = "hint-line"
)

// Rules configures which filename-declaration conventions the classifier
// runs and what it recognizes as a path.
type Rules struct {
	// Conventions is the ordered list of enabled convention names.
	Conventions []string `yaml:"conventions"`
	// CommentLeaders are the comment openers the comment-path convention
	// strips from a first body line.
	CommentLeaders []string `yaml:"comment_leaders"`
	// Extensions a bare filename may carry to count as a path even
	// without a directory separator.
	Extensions []string `yaml:"extensions"`
}

// DefaultRules returns the built-in convention set. The extension table
// is seeded from the languages the sibling project-to-markdown tool maps.
func DefaultRules() Rules {
	return Rules{
		Conventions: []string{
			ConventionCommentPath,
			ConventionFileDirective,
			ConventionHintLine,
		},
		CommentLeaders: []string{"//", "#", "--", ";", "/*", "<!--"},
		Extensions: []string{
			".py", ".java", ".js", ".ts", ".go", ".cs", ".sh", ".sql",
			".yaml", ".yml", ".toml", ".md", ".xml", ".html", ".css",
			".json", ".txt", ".rs", ".c", ".h", ".cpp", ".rb",
		},
	}
}

// LoadRules reads a rules file, filling omitted fields from the defaults.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("could not read rules file: %w", err)
	}

	rules := Rules{}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("could not parse rules file %s: %w", path, err)
	}

	defaults := DefaultRules()
	if rules.Conventions == nil {
		rules.Conventions = defaults.Conventions
	}
	if rules.CommentLeaders == nil {
		rules.CommentLeaders = defaults.CommentLeaders
	}
	if rules.Extensions == nil {
		rules.Extensions = defaults.Extensions
	}

	for _, name := range rules.Conventions {
		switch name {
		case ConventionCommentPath, ConventionFileDirective, ConventionHintLine:
		default:
			return Rules{}, fmt.Errorf("unknown convention %q in rules file %s", name, path)
		}
	}
	return rules, nil
}
