package userconfig

import (
	"errors"
	"fmt"
)

// Kind classifies a store failure.
type Kind int

const (
	KindUnknown Kind = iota
	ConfigDirUnavailable
	ReadError
	DecodeError
	DirCreateError
	EncodeError
	WriteError
	DeleteError
)

func (k Kind) String() string {
	switch k {
	case ConfigDirUnavailable:
		return "config_dir_unavailable"
	case ReadError:
		return "read_error"
	case DecodeError:
		return "decode_error"
	case DirCreateError:
		return "dir_create_error"
	case EncodeError:
		return "encode_error"
	case WriteError:
		return "write_error"
	case DeleteError:
		return "delete_error"
	default:
		return "unknown"
	}
}

// verb is the message prefix used when the error is flattened.
func (k Kind) verb() string {
	switch k {
	case ConfigDirUnavailable:
		return "get config dir"
	case ReadError:
		return "read config"
	case DecodeError:
		return "parse config"
	case DirCreateError:
		return "create config dir"
	case EncodeError:
		return "serialize config"
	case WriteError:
		return "write config"
	case DeleteError:
		return "delete config"
	default:
		return "config"
	}
}

// Error is returned by every Store operation.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind.verb(), e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Kind.verb(), e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

func newError(k Kind, path string, err error) *Error {
	return &Error{Kind: k, Path: path, Err: err}
}
