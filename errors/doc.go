/*
Package errors implements the error taxonomy shared by all custody
extensions.

Reuse the root errors declared here whenever possible and register a custom
root error only when an extension needs its own classification, for example
x/escrow registers the escrow failure kinds in its own code range.

	ErrXyz.New("...")           creates an instance with a stacktrace
	errors.Wrap(err, "...")     adds context, keeps the root cause
	ErrXyz.Is(err)              tests the root cause of any wrapped error

Code stands for ABCI error code, which allows to distinguish types of errors
on the client side and act accordingly.

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context
	%s is just the error message
	%+v is the full stack trace
*/
package errors
