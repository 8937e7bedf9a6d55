package arcinfo

import "fmt"

// HeaderError reports a header line that is missing, has too few
// whitespace-separated fields, or holds a value that does not convert to
// the expected numeric type. Line is the 1-based header line number.
type HeaderError struct {
	Line int
	Err  error
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("header line %d: %v", e.Line, e.Err)
}

func (e *HeaderError) Unwrap() error { return e.Err }

// RowError reports a data row with the wrong number of fields or a field
// that is not a valid float. Row is the 1-based index of the data line
// within the file body (counted in on-disk order, after the header).
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("data row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// TruncatedError reports a stream that ended before the number of data
// rows promised by the header could be read.
type TruncatedError struct {
	Rows int // data rows actually read
	Want int // nrows from the header
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated input: got %d of %d data rows", e.Rows, e.Want)
}
