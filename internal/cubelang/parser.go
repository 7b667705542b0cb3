package cubelang

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
)

var cubeParser = buildParser()

func buildParser() *participle.Parser[File] {
	p, err := participle.Build[File](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(3),
	)
	if err != nil {
		panic(fmt.Errorf("cubelang: failed to build parser: %w", err))
	}
	return p
}

// Parse parses source (named sourceName for participle's error
// positions) into a File AST, mirroring the teacher's
// parser.ParseSource(path, source) entry point.
func Parse(sourceName, source string) (*File, error) {
	return cubeParser.ParseString(sourceName, source)
}
