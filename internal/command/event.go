package command

import (
	"fmt"

	"github.com/kulaginds/caproto-go/internal/dbr"
	"github.com/kulaginds/caproto-go/internal/wire"
)

// EventAddRequest subscribes to future value changes on sid. Low, High, and
// To are deadband parameters from the original CA monitor API; most modern
// servers ignore them in favor of Mask.
type EventAddRequest struct {
	DataType       uint16
	DataCount      uint32
	SID            uint32
	SubscriptionID uint32
	Low            float32
	High           float32
	To             float32
	Mask           int32
}

func (e *EventAddRequest) CommandCode() Code { return CodeEventAdd }
func (e *EventAddRequest) String() string {
	return fmt.Sprintf("EventAddRequest(sid=%d, subscriptionid=%d, data_type=%d, data_count=%d, mask=%d)",
		e.SID, e.SubscriptionID, e.DataType, e.DataCount, e.Mask)
}

func (e *EventAddRequest) Marshal() ([]byte, error) {
	payload, err := marshalEventAddFilter(e.Low, e.High, e.To, e.Mask)
	if err != nil {
		return nil, err
	}
	return marshalFrame(CodeEventAdd, e.DataType, e.DataCount, e.SID, e.SubscriptionID, payload), nil
}

func marshalEventAddFilter(low, high, to float32, mask int32) ([]byte, error) {
	var out []byte
	for _, v := range []interface{}{&dbr.Float{Value: low}, &dbr.Float{Value: high}, &dbr.Float{Value: to}} {
		b, err := dbr.Marshal(v)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	maskBytes, err := dbr.Marshal(&dbr.Long{Value: mask})
	if err != nil {
		return nil, err
	}
	return append(out, maskBytes...), nil
}

func DecodeEventAddRequest(h wire.Header, payload []byte) (*EventAddRequest, error) {
	e := &EventAddRequest{DataType: h.DataType, DataCount: h.DataCount, SID: h.Parameter1, SubscriptionID: h.Parameter2}
	if len(payload) >= 16 {
		var low, high, to dbr.Float
		var mask dbr.Long
		if err := dbr.Unmarshal(payload[0:4], &low); err != nil {
			return nil, err
		}
		if err := dbr.Unmarshal(payload[4:8], &high); err != nil {
			return nil, err
		}
		if err := dbr.Unmarshal(payload[8:12], &to); err != nil {
			return nil, err
		}
		if err := dbr.Unmarshal(payload[12:16], &mask); err != nil {
			return nil, err
		}
		e.Low, e.High, e.To, e.Mask = low.Value, high.Value, to.Value, mask.Value
	}
	return e, nil
}

// EventAddResponse carries one update for a live subscription.
type EventAddResponse struct {
	DataType       uint16
	DataCount      uint32
	Status         uint32
	SubscriptionID uint32
	Payload        []byte
}

func (e *EventAddResponse) CommandCode() Code { return CodeEventAdd }
func (e *EventAddResponse) String() string {
	return fmt.Sprintf("EventAddResponse(subscriptionid=%d, status=%d, data_type=%d, data_count=%d)",
		e.SubscriptionID, e.Status, e.DataType, e.DataCount)
}
func (e *EventAddResponse) Marshal() ([]byte, error) {
	return marshalFrame(CodeEventAdd, e.DataType, e.DataCount, e.Status, e.SubscriptionID, e.Payload), nil
}

func DecodeEventAddResponse(h wire.Header, payload []byte) (*EventAddResponse, error) {
	return &EventAddResponse{
		DataType: h.DataType, DataCount: h.DataCount,
		Status: h.Parameter1, SubscriptionID: h.Parameter2, Payload: payload,
	}, nil
}

// EventCancelRequest ends a subscription.
type EventCancelRequest struct {
	DataType       uint16
	SID            uint32
	SubscriptionID uint32
}

func (e *EventCancelRequest) CommandCode() Code { return CodeEventCancel }
func (e *EventCancelRequest) String() string {
	return fmt.Sprintf("EventCancelRequest(sid=%d, subscriptionid=%d)", e.SID, e.SubscriptionID)
}
func (e *EventCancelRequest) Marshal() ([]byte, error) {
	return marshalFrame(CodeEventCancel, e.DataType, 0, e.SID, e.SubscriptionID, nil), nil
}

func DecodeEventCancelRequest(h wire.Header) (*EventCancelRequest, error) {
	return &EventCancelRequest{DataType: h.DataType, SID: h.Parameter1, SubscriptionID: h.Parameter2}, nil
}

// EventCancelResponse confirms a subscription was canceled.
type EventCancelResponse struct {
	DataType       uint16
	SID            uint32
	SubscriptionID uint32
}

func (e *EventCancelResponse) CommandCode() Code { return CodeEventCancel }
func (e *EventCancelResponse) String() string {
	return fmt.Sprintf("EventCancelResponse(sid=%d, subscriptionid=%d)", e.SID, e.SubscriptionID)
}
func (e *EventCancelResponse) Marshal() ([]byte, error) {
	return marshalFrame(CodeEventCancel, e.DataType, 0, e.SID, e.SubscriptionID, nil), nil
}

func DecodeEventCancelResponse(h wire.Header) (*EventCancelResponse, error) {
	return &EventCancelResponse{DataType: h.DataType, SID: h.Parameter1, SubscriptionID: h.Parameter2}, nil
}
