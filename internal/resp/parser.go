package resp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

type Type byte

const (
	MaxBulkLength  = 512 << 20
	MaxArrayLength = 1 << 20
)

const (
	SimpleString Type = '+'
	Error        Type = '-'
	Integer      Type = ':'
	BulkString   Type = '$'
	Array        Type = '*'
)

var (
	ErrInvalidType   = errors.New("invalid RESP type")
	ErrInvalidFormat = errors.New("invalid RESP format")
	ErrIncomplete    = errors.New("incomplete RESP frame")
)

type Value struct {
	Type  Type
	Str   string
	Int   int64
	Array []Value
	Null  bool
}

type Parser struct {
	reader *bufio.Reader
	// src is set when parsing a fixed buffer, so declared lengths can be
	// checked against the bytes actually present.
	src *bytes.Reader
}

func NewParser(r io.Reader) *Parser {
	return &Parser{
		reader: bufio.NewReader(r),
	}
}

// Decode parses one value from the front of buf and reports how many bytes
// it took. A buf holding only part of a frame yields ErrIncomplete.
func Decode(buf []byte) (Value, int, error) {
	if len(buf) == 0 {
		return Value{}, 0, ErrIncomplete
	}

	src := bytes.NewReader(buf)
	p := &Parser{reader: bufio.NewReaderSize(src, len(buf)), src: src}
	v, err := p.Parse()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Value{}, 0, ErrIncomplete
		}
		return Value{}, 0, err
	}
	return v, len(buf) - p.reader.Buffered(), nil
}

// short reports whether a fixed buffer holds fewer than n unread bytes.
func (p *Parser) short(n int) bool {
	return p.src != nil && p.reader.Buffered()+p.src.Len() < n
}

func (p *Parser) Parse() (Value, error) {
	typeByte, err := p.reader.ReadByte()
	if err != nil {
		return Value{}, err
	}

	switch Type(typeByte) {
	case SimpleString:
		return p.parseSimpleString()
	case Error:
		return p.parseError()
	case Integer:
		return p.parseInteger()
	case BulkString:
		return p.parseBulkString()
	case Array:
		return p.parseArray()
	default:
		return Value{}, fmt.Errorf("%w: %c", ErrInvalidType, typeByte)
	}
}

func (p *Parser) parseSimpleString() (Value, error) {
	line, err := p.readLine()
	if err != nil {
		return Value{}, err
	}
	return Value{Type: SimpleString, Str: line}, nil
}

func (p *Parser) parseError() (Value, error) {
	line, err := p.readLine()
	if err != nil {
		return Value{}, err
	}
	return Value{Type: Error, Str: line}, nil
}

func (p *Parser) parseInteger() (Value, error) {
	line, err := p.readLine()
	if err != nil {
		return Value{}, err
	}

	num, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: invalid integer", ErrInvalidFormat)
	}

	return Value{Type: Integer, Int: num}, nil
}

func (p *Parser) parseBulkString() (Value, error) {
	line, err := p.readLine()
	if err != nil {
		return Value{}, err
	}

	length, err := strconv.Atoi(line)
	if err != nil {
		return Value{}, fmt.Errorf("%w: invalid bulk string length", ErrInvalidFormat)
	}

	if length == -1 {
		return Value{Type: BulkString, Null: true}, nil
	}

	if length < -1 || length > MaxBulkLength {
		return Value{}, fmt.Errorf("%w: bulk string length %d", ErrInvalidFormat, length)
	}

	if length == 0 {
		_, err := p.readLine()
		if err != nil {
			return Value{}, err
		}
		return Value{Type: BulkString, Str: ""}, nil
	}

	if p.short(length + 2) {
		return Value{}, io.ErrUnexpectedEOF
	}

	buf := make([]byte, length)
	_, err = io.ReadFull(p.reader, buf)
	if err != nil {
		return Value{}, err
	}

	crlf := make([]byte, 2)
	_, err = io.ReadFull(p.reader, crlf)
	if err != nil {
		return Value{}, err
	}
	if crlf[0] != '\r' || crlf[1] != '\n' {
		return Value{}, fmt.Errorf("%w: missing CRLF after bulk string", ErrInvalidFormat)
	}

	return Value{Type: BulkString, Str: string(buf)}, nil
}

func (p *Parser) parseArray() (Value, error) {
	line, err := p.readLine()
	if err != nil {
		return Value{}, err
	}

	count, err := strconv.Atoi(line)
	if err != nil {
		return Value{}, fmt.Errorf("%w: invalid array length", ErrInvalidFormat)
	}

	if count == -1 {
		return Value{Type: Array, Null: true}, nil
	}

	if count < -1 || count > MaxArrayLength {
		return Value{}, fmt.Errorf("%w: array length %d", ErrInvalidFormat, count)
	}

	if count == 0 {
		return Value{Type: Array, Array: []Value{}}, nil
	}

	// every element takes at least three bytes
	if p.short(count * 3) {
		return Value{}, io.ErrUnexpectedEOF
	}

	array := make([]Value, 0, min(count, 64))
	for range count {
		val, err := p.Parse()
		if err != nil {
			return Value{}, err
		}
		array = append(array, val)
	}

	return Value{Type: Array, Array: array}, nil
}

func (p *Parser) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	if len(line) < 2 || line[len(line)-2] != '\r' || line[len(line)-1] != '\n' {
		return "", fmt.Errorf("%w: missing CRLF", ErrInvalidFormat)
	}

	return line[:len(line)-2], nil
}
