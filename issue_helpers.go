package vld

// NewIssues returns a single-issue set without a snapshot.
func NewIssues(code IssueCode, msg string) Issues {
	return Issues{{Code: code, Message: msg}}
}

// NewIssuesWithValue returns a single-issue set carrying a snapshot of v.
func NewIssuesWithValue(code IssueCode, msg string, v Value) Issues {
	var iss Issues
	iss.AddWithValue(code, msg, v)
	return iss
}

// IssuesOf converts a parse error back to Issues. Errors that are not Issues
// (a custom Schema returning a plain error) become one custom issue with the
// error text.
func IssuesOf(err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return NewIssues(CustomCode(CustomCustom), err.Error())
}
