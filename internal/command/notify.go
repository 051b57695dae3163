package command

import (
	"fmt"

	"github.com/kulaginds/caproto-go/internal/wire"
)

// ReadNotifyRequest asks the server to read sid's current value and reply
// with one ReadNotifyResponse carrying ioid.
type ReadNotifyRequest struct {
	DataType  uint16
	DataCount uint32
	SID       uint32
	IOID      uint32
}

func (r *ReadNotifyRequest) CommandCode() Code { return CodeReadNotify }
func (r *ReadNotifyRequest) String() string {
	return fmt.Sprintf("ReadNotifyRequest(sid=%d, ioid=%d, data_type=%d, data_count=%d)", r.SID, r.IOID, r.DataType, r.DataCount)
}
func (r *ReadNotifyRequest) Marshal() ([]byte, error) {
	return marshalFrame(CodeReadNotify, r.DataType, r.DataCount, r.SID, r.IOID, nil), nil
}

func DecodeReadNotifyRequest(h wire.Header) (*ReadNotifyRequest, error) {
	return &ReadNotifyRequest{DataType: h.DataType, DataCount: h.DataCount, SID: h.Parameter1, IOID: h.Parameter2}, nil
}

// ReadNotifyResponse carries the value(s) requested by a prior
// ReadNotifyRequest. Payload holds the already-encoded DBR bytes (internal/
// dbr.Marshal for the first element, internal/dbr.MarshalArray for any
// trailing elements when DataCount > 1); this package is agnostic to the
// value's native type.
type ReadNotifyResponse struct {
	DataType  uint16
	DataCount uint32
	Status    uint32
	IOID      uint32
	Payload   []byte
}

func (r *ReadNotifyResponse) CommandCode() Code { return CodeReadNotify }
func (r *ReadNotifyResponse) String() string {
	return fmt.Sprintf("ReadNotifyResponse(ioid=%d, status=%d, data_type=%d, data_count=%d)", r.IOID, r.Status, r.DataType, r.DataCount)
}
func (r *ReadNotifyResponse) Marshal() ([]byte, error) {
	return marshalFrame(CodeReadNotify, r.DataType, r.DataCount, r.Status, r.IOID, r.Payload), nil
}

func DecodeReadNotifyResponse(h wire.Header, payload []byte) (*ReadNotifyResponse, error) {
	return &ReadNotifyResponse{
		DataType: h.DataType, DataCount: h.DataCount,
		Status: h.Parameter1, IOID: h.Parameter2, Payload: payload,
	}, nil
}

// WriteNotifyRequest asks the server to write a new value to sid and reply
// with a WriteNotifyResponse naming ioid.
type WriteNotifyRequest struct {
	DataType  uint16
	DataCount uint32
	SID       uint32
	IOID      uint32
	Payload   []byte
}

func (w *WriteNotifyRequest) CommandCode() Code { return CodeWriteNotify }
func (w *WriteNotifyRequest) String() string {
	return fmt.Sprintf("WriteNotifyRequest(sid=%d, ioid=%d, data_type=%d, data_count=%d)", w.SID, w.IOID, w.DataType, w.DataCount)
}
func (w *WriteNotifyRequest) Marshal() ([]byte, error) {
	return marshalFrame(CodeWriteNotify, w.DataType, w.DataCount, w.SID, w.IOID, w.Payload), nil
}

func DecodeWriteNotifyRequest(h wire.Header, payload []byte) (*WriteNotifyRequest, error) {
	return &WriteNotifyRequest{
		DataType: h.DataType, DataCount: h.DataCount,
		SID: h.Parameter1, IOID: h.Parameter2, Payload: payload,
	}, nil
}

// WriteNotifyResponse confirms (or reports the status of) a prior
// WriteNotifyRequest.
type WriteNotifyResponse struct {
	DataType  uint16
	DataCount uint32
	Status    uint32
	IOID      uint32
}

func (w *WriteNotifyResponse) CommandCode() Code { return CodeWriteNotify }
func (w *WriteNotifyResponse) String() string {
	return fmt.Sprintf("WriteNotifyResponse(ioid=%d, status=%d)", w.IOID, w.Status)
}
func (w *WriteNotifyResponse) Marshal() ([]byte, error) {
	return marshalFrame(CodeWriteNotify, w.DataType, w.DataCount, w.Status, w.IOID, nil), nil
}

func DecodeWriteNotifyResponse(h wire.Header) (*WriteNotifyResponse, error) {
	return &WriteNotifyResponse{DataType: h.DataType, DataCount: h.DataCount, Status: h.Parameter1, IOID: h.Parameter2}, nil
}
