package rebel

import (
	"fmt"
	"regexp"
)

// Named holds the values of ":name" placeholders.
//
// Pass it as the only argument of a statement:
//
//	db.Query(ctx, "SELECT * FROM cities WHERE name = :name", rebel.Named{"name": "Lisbon"})
type Named map[string]any

// namedParamRegexp matches ":name" tokens. It is a pattern match, not a SQL parser:
// tokens inside string literals and the second colon of a "::" cast are matched too.
var namedParamRegexp = regexp.MustCompile(`:[a-zA-Z_]+`)

// Bind rewrites the named placeholders of query into positional "?" placeholders.
//
// Arguments of type Named provide named values, every other argument is positional.
// Supplying both kinds fails with ErrMixedArguments. Without named values, query and the
// positional arguments are returned unchanged.
//
// Each occurrence of a named placeholder is bound on its own, so a name that appears
// twice contributes two values, in the order the placeholders appear. A placeholder with
// no value fails with ErrUnknownParameter.
//
// Bind does not look at "?" tokens already in query. Combining "?" and ":name" tokens in
// one statement misaligns the arguments and is not detected.
func Bind(query string, args ...any) (string, []any, error) {
	positional, named, err := splitArgs(args)
	if err != nil {
		return "", nil, err
	}
	if len(named) == 0 {
		return query, positional, nil
	}

	var bindErr error
	values := make([]any, 0, len(named))
	bound := namedParamRegexp.ReplaceAllStringFunc(query, func(token string) string {
		if bindErr != nil {
			return token
		}
		value, ok := named[token[1:]]
		if !ok {
			bindErr = fmt.Errorf("%w: %s", ErrUnknownParameter, token)
			return token
		}
		values = append(values, value)
		return "?"
	})
	if bindErr != nil {
		return "", nil, bindErr
	}

	return bound, values, nil
}

// splitArgs separates Named values from positional ones. Several Named values are merged,
// later keys overriding earlier ones.
func splitArgs(args []any) ([]any, Named, error) {
	var named Named
	namedCount := 0
	for _, arg := range args {
		n, ok := arg.(Named)
		if !ok {
			continue
		}
		namedCount++
		if len(n) == 0 {
			continue
		}
		if named == nil {
			named = make(Named, len(n))
		}
		for k, v := range n {
			named[k] = v
		}
	}

	if namedCount == 0 {
		return args, nil, nil
	}

	positional := make([]any, 0, len(args)-namedCount)
	for _, arg := range args {
		if _, ok := arg.(Named); !ok {
			positional = append(positional, arg)
		}
	}

	if len(positional) > 0 && len(named) > 0 {
		return nil, nil, ErrMixedArguments
	}
	return positional, named, nil
}
