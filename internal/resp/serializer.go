package resp

import (
	"fmt"
	"io"
	"strconv"

	"github.com/valyala/bytebufferpool"
)

// AppendValue appends the RESP encoding of v to dst. On error dst is
// returned unchanged.
func AppendValue(dst []byte, v Value) ([]byte, error) {
	out, err := appendValue(dst, v)
	if err != nil {
		return dst, err
	}
	return out, nil
}

func appendValue(dst []byte, v Value) ([]byte, error) {
	switch v.Type {
	case SimpleString, Error:
		dst = append(dst, byte(v.Type))
		dst = append(dst, v.Str...)
		return append(dst, "\r\n"...), nil
	case Integer:
		return appendHeader(dst, Integer, v.Int), nil
	case BulkString:
		if v.Null {
			return appendHeader(dst, BulkString, -1), nil
		}
		dst = appendHeader(dst, BulkString, int64(len(v.Str)))
		dst = append(dst, v.Str...)
		return append(dst, "\r\n"...), nil
	case Array:
		if v.Null {
			return appendHeader(dst, Array, -1), nil
		}
		dst = appendHeader(dst, Array, int64(len(v.Array)))
		for _, elem := range v.Array {
			var err error
			if dst, err = appendValue(dst, elem); err != nil {
				return nil, err
			}
		}
		return dst, nil
	default:
		return nil, fmt.Errorf("%w: %c", ErrInvalidType, v.Type)
	}
}

func appendHeader(dst []byte, t Type, n int64) []byte {
	dst = append(dst, byte(t))
	dst = strconv.AppendInt(dst, n, 10)
	return append(dst, "\r\n"...)
}

type Serializer struct {
	writer io.Writer
}

func NewSerializer(w io.Writer) *Serializer {
	return &Serializer{writer: w}
}

// Serialize encodes v to the underlying writer. A pooled buffer is appended
// to in place.
func (s *Serializer) Serialize(v Value) error {
	if bb, ok := s.writer.(*bytebufferpool.ByteBuffer); ok {
		var err error
		bb.B, err = AppendValue(bb.B, v)
		return err
	}

	out := bytebufferpool.Get()
	defer bytebufferpool.Put(out)

	var err error
	if out.B, err = AppendValue(out.B, v); err != nil {
		return err
	}
	_, err = s.writer.Write(out.B)
	return err
}

// Marshal encodes v into a fresh slice, staging it in a pooled buffer.
func Marshal(v Value) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	var err error
	if buf.B, err = AppendValue(buf.B, v); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.B...), nil
}

func SimpleStringValue(str string) Value {
	return Value{Type: SimpleString, Str: str}
}

func ErrorValue(str string) Value {
	return Value{Type: Error, Str: str}
}

func IntegerValue(num int64) Value {
	return Value{Type: Integer, Int: num}
}

func BulkStringValue(str string) Value {
	return Value{Type: BulkString, Str: str}
}

func NullBulkStringValue() Value {
	return Value{Type: BulkString, Null: true}
}

func ArrayValue(values ...Value) Value {
	return Value{Type: Array, Array: values}
}

func NullArrayValue() Value {
	return Value{Type: Array, Null: true}
}

func OKValue() Value {
	return SimpleStringValue("OK")
}

func PongValue() Value {
	return SimpleStringValue("PONG")
}
