package errors

import "errors"

var (
	ErrInvalid    = errors.New("invalid")
	ErrNoDocument = errors.New("no document indexed")
	ErrIngestion  = errors.New("ingestion failed")
	ErrStorage    = errors.New("storage failure")
)

func IsNoDocument(err error) bool {
	return errors.Is(err, ErrNoDocument)
}

func IsIngestion(err error) bool {
	return errors.Is(err, ErrIngestion)
}
