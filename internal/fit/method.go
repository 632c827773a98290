package fit

import (
	"fmt"
	"strings"

	apperrors "github.com/agbru/frankestudy/internal/errors"
)

// Method selects the regression variant.
type Method int

const (
	OLS Method = iota
	Ridge
	Lasso
)

var methodNames = [...]string{OLS: "ols", Ridge: "ridge", Lasso: "lasso"}

// String returns the lower-case method name used in study files and metrics.
func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("method(%d)", int(m))
	}
	return methodNames[m]
}

// Title returns the display name used in figure titles.
func (m Method) Title() string {
	switch m {
	case OLS:
		return "OLS"
	case Ridge:
		return "Ridge"
	case Lasso:
		return "Lasso"
	}
	return m.String()
}

// Regularized reports whether lambda affects the fit.
func (m Method) Regularized() bool { return m == Ridge || m == Lasso }

// ParseMethod parses a case-insensitive method name.
func ParseMethod(s string) (Method, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range methodNames {
		if n == name {
			return Method(i), nil
		}
	}
	return 0, apperrors.ValidationError{Field: "method", Message: fmt.Sprintf("unknown method %q (want ols, ridge or lasso)", s)}
}
