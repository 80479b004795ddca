package httpbinding

import (
	"fmt"
	"strings"

	"github.com/smithykit/runtime/internal/uri"
)

// replaceHostLabel substitutes the {label} placeholder in prefix with
// value, used when an operation's smithy.api#endpoint host prefix
// pattern references an input member.
func replaceHostLabel(prefix, label, value string) string {
	return strings.Replace(prefix, "{"+label+"}", value, 1)
}

// ResolveHostPrefix validates a fully-substituted host prefix and
// returns the error smithy.api#endpoint requires when a label's value
// would not form a valid DNS host label once inserted.
func ResolveHostPrefix(prefix string) error {
	for _, label := range strings.Split(prefix, ".") {
		if label == "" {
			continue
		}
		if !uri.ValidHostLabel(label) {
			return fmt.Errorf("invalid host prefix label %q: member value would produce an invalid DNS label", label)
		}
	}
	return nil
}
