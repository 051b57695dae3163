package dbr

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/lunixbochs/struc"
)

var bigEndian = &struc.Options{Order: binary.BigEndian}

// Marshal packs the fixed-size metadata-plus-first-value portion of a DBR
// record using the catalog's big-endian layout. v must be a pointer to one
// of this package's record types (Int, StsFloat, TimeEnum, CtrlDouble, ...).
func Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := struc.PackWithOptions(&buf, v, bigEndian); err != nil {
		return nil, fmt.Errorf("dbr: pack %T: %w", v, err)
	}
	return buf.Bytes(), nil
}

// Unmarshal unpacks b into v, which must be a pointer to one of this
// package's record types.
func Unmarshal(b []byte, v interface{}) error {
	if err := struc.UnpackWithOptions(bytes.NewReader(b), v, bigEndian); err != nil {
		return fmt.Errorf("dbr: unpack %T: %w", v, err)
	}
	return nil
}

// Sizeof returns the fixed encoded size in bytes of v.
func Sizeof(v interface{}) (int, error) {
	n, err := struc.SizeofWithOptions(v, bigEndian)
	if err != nil {
		return 0, fmt.Errorf("dbr: sizeof %T: %w", v, err)
	}
	return n, nil
}

// MarshalArray encodes a slice of native scalar values (e.g. []int32,
// []float64) back-to-back in big-endian order: the wire form used whenever
// a command's data_count is greater than one. The first logical element is
// still the one carried inside the record Marshal produces; MarshalArray
// encodes only the elements at index 1..count-1 that follow it.
func MarshalArray(values interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, values); err != nil {
		return nil, fmt.Errorf("dbr: marshal array: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalArray decodes count-1 trailing scalar elements from b into
// values, which must be a pointer to a slice of a fixed-size native type.
func UnmarshalArray(b []byte, values interface{}) error {
	if err := binary.Read(bytes.NewReader(b), binary.BigEndian, values); err != nil {
		return fmt.Errorf("dbr: unmarshal array: %w", err)
	}
	return nil
}

// elementSize gives the wire width, in bytes, of one logical value element
// for a given DBR_ID — the unit a caller can use to compute how many
// trailing bytes an array payload (data_count > 1) contributes after the
// fixed metadata-plus-first-value record.
var elementSize = map[Type]int{
	STRING: MaxStringSize, INT: 2, FLOAT: 4, ENUM: 2, CHAR: 1, LONG: 4, DOUBLE: 8,
	STS_STRING: MaxStringSize, STS_INT: 2, STS_FLOAT: 4, STS_ENUM: 2, STS_CHAR: 1, STS_LONG: 4, STS_DOUBLE: 8,
	TIME_STRING: MaxStringSize, TIME_INT: 2, TIME_FLOAT: 4, TIME_ENUM: 2, TIME_CHAR: 1, TIME_LONG: 4, TIME_DOUBLE: 8,
	GR_INT: 2, GR_FLOAT: 4, GR_ENUM: 2, GR_CHAR: 1, GR_LONG: 4, GR_DOUBLE: 8,
	CTRL_INT: 2, CTRL_FLOAT: 4, CTRL_ENUM: 2, CTRL_CHAR: 1, CTRL_LONG: 4, CTRL_DOUBLE: 8,
	PUT_ACKT: 2, PUT_ACKS: 2, STSACK_STRING: MaxStringSize, CLASS_NAME: 2,
}

// ElementSize returns the wire width of one value element for id.
func ElementSize(id Type) (int, error) {
	n, ok := elementSize[id]
	if !ok {
		return 0, fmt.Errorf("dbr: unknown or unimplemented type %v", id)
	}
	return n, nil
}

// New returns a pointer to a zero-value record for id, suitable for passing
// to Unmarshal, or an error if id is unknown or one of the two reserved
// slots (21, 28).
func New(id Type) (interface{}, error) {
	switch id {
	case STRING:
		return &String{}, nil
	case INT:
		return &Int{}, nil
	case FLOAT:
		return &Float{}, nil
	case ENUM:
		return &Enum{}, nil
	case CHAR:
		return &Char{}, nil
	case LONG:
		return &Long{}, nil
	case DOUBLE:
		return &Double{}, nil
	case STS_STRING:
		return &StsString{}, nil
	case STS_INT:
		return &StsInt{}, nil
	case STS_FLOAT:
		return &StsFloat{}, nil
	case STS_ENUM:
		return &StsEnum{}, nil
	case STS_CHAR:
		return &StsChar{}, nil
	case STS_LONG:
		return &StsLong{}, nil
	case STS_DOUBLE:
		return &StsDouble{}, nil
	case TIME_STRING:
		return &TimeString{}, nil
	case TIME_INT:
		return &TimeInt{}, nil
	case TIME_FLOAT:
		return &TimeFloat{}, nil
	case TIME_ENUM:
		return &TimeEnum{}, nil
	case TIME_CHAR:
		return &TimeChar{}, nil
	case TIME_LONG:
		return &TimeLong{}, nil
	case TIME_DOUBLE:
		return &TimeDouble{}, nil
	case GR_INT:
		return &GrInt{}, nil
	case GR_FLOAT:
		return &GrFloat{}, nil
	case GR_ENUM:
		return &GrEnum{}, nil
	case GR_CHAR:
		return &GrChar{}, nil
	case GR_LONG:
		return &GrLong{}, nil
	case GR_DOUBLE:
		return &GrDouble{}, nil
	case CTRL_INT:
		return &CtrlInt{}, nil
	case CTRL_FLOAT:
		return &CtrlFloat{}, nil
	case CTRL_ENUM:
		return &CtrlEnum{}, nil
	case CTRL_CHAR:
		return &CtrlChar{}, nil
	case CTRL_LONG:
		return &CtrlLong{}, nil
	case CTRL_DOUBLE:
		return &CtrlDouble{}, nil
	case PUT_ACKT:
		return &PutAckt{}, nil
	case PUT_ACKS:
		return &PutAcks{}, nil
	case STSACK_STRING:
		return &StsAckString{}, nil
	case CLASS_NAME:
		return &ClassName{}, nil
	default:
		return nil, fmt.Errorf("dbr: unknown or unimplemented type %v", id)
	}
}
