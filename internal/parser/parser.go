package parser

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/mcncl/modelgen/internal/errors"
	"github.com/mcncl/modelgen/internal/models"
)

// Parse decodes a single JSON document from reader into a models.Value.
// Object members keep the order in which they appear in the input.
func Parse(reader io.Reader) (models.Value, error) {
	dec := json.NewDecoder(reader)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Value{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return models.Value{}, syntaxError(err)
	}

	root, err := decodeValue(dec, tok)
	if err != nil {
		return models.Value{}, err
	}

	// Anything but EOF after the first value is rejected.
	if _, err := dec.Token(); err == nil {
		return models.Value{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return models.Value{}, errors.NewParsingError("invalid trailing data after first JSON value", err)
	}

	return root, nil
}

// decodeValue builds the value that starts with tok, consuming the rest of it
// from dec.
func decodeValue(dec *json.Decoder, tok json.Token) (models.Value, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return models.Value{}, errors.NewParsingError(fmt.Sprintf("unexpected delimiter %q", rune(v)), errors.ErrInvalidJSON)
		}
	case nil:
		return models.Null(), nil
	case bool:
		return models.Bool(v), nil
	case string:
		return models.String(v), nil
	case json.Number:
		return numberValue(string(v))
	case float64:
		return numberValue(strconv.FormatFloat(v, 'g', -1, 64))
	default:
		return models.Value{}, errors.NewParsingError(fmt.Sprintf("unexpected JSON token of type %T", v), errors.ErrInvalidJSON)
	}
}

func decodeObject(dec *json.Decoder) (models.Value, error) {
	obj := models.Object()
	index := make(map[string]int)

	for {
		tok, err := dec.Token()
		if err != nil {
			return models.Value{}, syntaxError(err)
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return obj, nil
		}

		key, ok := tok.(string)
		if !ok {
			return models.Value{}, errors.NewParsingError(fmt.Sprintf("object key must be a string, got %T", tok), errors.ErrInvalidJSON)
		}

		valueTok, err := dec.Token()
		if err != nil {
			return models.Value{}, syntaxError(err)
		}
		value, err := decodeValue(dec, valueTok)
		if err != nil {
			return models.Value{}, err
		}

		// A repeated key keeps its first position and takes the last value.
		if i, seen := index[key]; seen {
			obj.Members[i].Value = value
			continue
		}
		index[key] = len(obj.Members)
		obj.Members = append(obj.Members, models.M(key, value))
	}
}

func decodeArray(dec *json.Decoder) (models.Value, error) {
	arr := models.Array()

	for {
		tok, err := dec.Token()
		if err != nil {
			return models.Value{}, syntaxError(err)
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return arr, nil
		}

		item, err := decodeValue(dec, tok)
		if err != nil {
			return models.Value{}, err
		}
		arr.Array = append(arr.Array, item)
	}
}

// numberValue classifies a JSON number literal. Literals that fit in an int64
// are integers; everything else, including exponents and fractions, is a float.
func numberValue(literal string) (models.Value, error) {
	if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return models.Int(i), nil
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return models.Value{}, errors.NewParsingError(fmt.Sprintf("invalid number %q", literal), errors.ErrInvalidJSON)
	}
	return models.Float64(f), nil
}

func syntaxError(err error) error {
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	var syntaxErr *json.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxErr.Offset),
			errors.ErrInvalidJSON,
		)
	}
	return errors.NewParsingError("failed to decode JSON", stderrors.Join(errors.ErrInvalidJSON, err))
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Value{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Value{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Value{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}
