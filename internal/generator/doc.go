// Package generator produces the weekly report from a JSON data file and an
// HTML template.
//
// A run reads both inputs, decodes the template from its configured charset,
// executes the default pipeline against it and writes the result. The
// generator never creates structure: a template region that is missing is
// reported as a warning and the rest of the document is still written.
//
// Data errors keep their cause in the chain so callers can classify them:
//
//	_, err := gen.Generate(ctx, paths)
//	var syntaxErr *json.SyntaxError
//	switch {
//	case errors.Is(err, os.ErrNotExist):
//	case errors.As(err, &syntaxErr):
//	}
package generator
