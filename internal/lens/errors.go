package lens

import "fmt"

// ExpectedXGotYError reports that a lens needed one JTD form but met
// another.
type ExpectedXGotYError struct {
	Op       string
	Expected string
	Got      string
}

func (e *ExpectedXGotYError) Error() string {
	return fmt.Sprintf("`%s` lens expected `%s`, but got a `%s` instead", e.Op, e.Expected, e.Got)
}

// MissingNameError reports that a lens referenced a property name
// absent from the schema it was applied to.
type MissingNameError struct {
	Op   string
	Name string
}

func (e *MissingNameError) Error() string {
	return fmt.Sprintf("`%s` lens expected a name `%s`, but it was not present in the properties", e.Op, e.Name)
}

// WithinError wraps an inner transform error with the property name
// it occurred under, so nested failures read as a path.
type WithinError struct {
	Name  string
	Inner error
}

func (e *WithinError) Error() string {
	return fmt.Sprintf("in `%s`: %s", e.Name, e.Inner)
}

func (e *WithinError) Unwrap() error { return e.Inner }

// KeyConflictError reports that Add tried to insert a property name
// that already exists.
type KeyConflictError struct {
	Name string
}

func (e *KeyConflictError) Error() string {
	return fmt.Sprintf("could not add key %s, it already exists in the properties", e.Name)
}

// WrongTypeForTransformError reports that Convert's declared source
// type did not match the property's actual type.
type WrongTypeForTransformError struct {
	Expected fmt.Stringer
	Got      fmt.Stringer
}

func (e *WrongTypeForTransformError) Error() string {
	return fmt.Sprintf("got the wrong source type for `convert`. expected `%s`, got `%s`", e.Expected, e.Got)
}

// UnsupportedSchemaTypeError reports a lens whose kind TransformJTD
// does not recognise. JTD forms outside the Properties/Elements/Type
// subset never produce it: package jtd cannot represent them.
type UnsupportedSchemaTypeError struct {
	Kind string
}

func (e *UnsupportedSchemaTypeError) Error() string {
	return fmt.Sprintf("unsupported schema type: %s", e.Kind)
}
