package screener

// UserInputError reports a caller mistake, e.g. requesting depth for an
// empty market identifier. API layers map it to a 4xx response.
type UserInputError struct {
	Msg string
}

func (e *UserInputError) Error() string { return e.Msg }
