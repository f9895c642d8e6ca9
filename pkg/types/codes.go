package types

// Code is the numeric result returned across the ABI boundary. The values are
// part of the public contract and must never be renumbered.
type Code uint32

const (
	CodeSuccess             Code = 0
	CodeUnknown             Code = 1
	CodeInvalidArgument     Code = 2
	CodeInvalidStreamFormat Code = 3
	CodeUnsupportedVersion  Code = 4
	CodeValidationFailed    Code = 5
	CodeIO                  Code = 6
	CodeNotFound            Code = 7
)

// String implements fmt.Stringer for Code.
func (c Code) String() string {
	switch c {
	case CodeSuccess:
		return "success"
	case CodeInvalidArgument:
		return "invalid argument"
	case CodeInvalidStreamFormat:
		return "invalid stream format"
	case CodeUnsupportedVersion:
		return "unsupported version"
	case CodeValidationFailed:
		return "validation failed"
	case CodeIO:
		return "i/o failure"
	case CodeNotFound:
		return "not found"
	default:
		return "unknown failure"
	}
}

// Code returns the ABI code for kind.
func (k ErrKind) Code() Code {
	switch k {
	case ErrKindInvalidArgument:
		return CodeInvalidArgument
	case ErrKindInvalidStreamFormat:
		return CodeInvalidStreamFormat
	case ErrKindUnsupportedVersion:
		return CodeUnsupportedVersion
	case ErrKindValidationFailed:
		return CodeValidationFailed
	case ErrKindIO:
		return CodeIO
	case ErrKindNotFound:
		return CodeNotFound
	default:
		return CodeUnknown
	}
}

// CodeOf maps err to its ABI code. A nil error is CodeSuccess; an error that
// carries no kind is CodeUnknown, never CodeSuccess.
func CodeOf(err error) Code {
	if err == nil {
		return CodeSuccess
	}
	return KindOf(err).Code()
}
