package novel

import (
	"fmt"
	"log/slog"
)

// invariantViolation reports an element that was constructed without any
// sentence. Builds tagged nvldebug panic; everything else logs and drops the
// token.
func invariantViolation(kind Kind) {
	if debugAssertions {
		panic(fmt.Sprintf("novel: %s element has no sentences", kind))
	}
	slog.Warn("element has no sentences, token dropped", "kind", string(kind))
}
