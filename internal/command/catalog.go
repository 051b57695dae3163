package command

import (
	"fmt"

	"github.com/kulaginds/caproto-go/internal/protoerr"
	"github.com/kulaginds/caproto-go/internal/wire"
)

// Decode builds the concrete Command for a frame already split into header
// and payload by internal/framer. fromRole is the role of whoever sent the
// bytes (the peer, from this side's point of view); most command codes mean
// a different Go type depending on which role originates them.
func Decode(fromRole Role, h wire.Header, payload []byte) (Command, error) {
	code := Code(h.Command)
	switch code {
	case CodeVersion:
		if fromRole == CLIENT {
			return DecodeVersionRequest(h)
		}
		return DecodeVersionResponse(h)
	case CodeSearch:
		if fromRole == CLIENT {
			return DecodeSearchRequest(h, payload)
		}
		return DecodeSearchResponse(h, payload)
	case CodeNotFound:
		return DecodeNotFoundResponse(h)
	case CodeBeacon:
		return DecodeBeacon(h)
	case CodeEcho:
		if fromRole == CLIENT {
			return DecodeEchoRequest(h)
		}
		return DecodeEchoResponse(h)
	case CodeRepeaterRegister:
		return DecodeRepeaterRegisterRequest(h)
	case CodeRepeaterConfirm:
		return DecodeRepeaterConfirmResponse(h)
	case CodeCreateChannel:
		if fromRole == CLIENT {
			return DecodeCreateChannelRequest(h, payload)
		}
		return DecodeCreateChannelResponse(h)
	case CodeCreateChFail:
		return DecodeCreateChannelFailureResponse(h)
	case CodeClearChannel:
		if fromRole == CLIENT {
			return DecodeClearChannelRequest(h)
		}
		return DecodeClearChannelResponse(h)
	case CodeAccessRights:
		return DecodeAccessRightsResponse(h)
	case CodeServerDisconn:
		return DecodeServerDisconnResponse(h)
	case CodeClientName:
		return DecodeClientNameRequest(payload)
	case CodeHostName:
		return DecodeHostNameRequest(payload)
	case CodeReadNotify:
		if fromRole == CLIENT {
			return DecodeReadNotifyRequest(h)
		}
		return DecodeReadNotifyResponse(h, payload)
	case CodeWriteNotify:
		if fromRole == CLIENT {
			return DecodeWriteNotifyRequest(h, payload)
		}
		return DecodeWriteNotifyResponse(h)
	case CodeEventAdd:
		if fromRole == CLIENT {
			return DecodeEventAddRequest(h, payload)
		}
		return DecodeEventAddResponse(h, payload)
	case CodeEventCancel:
		if fromRole == CLIENT {
			return DecodeEventCancelRequest(h)
		}
		return DecodeEventCancelResponse(h)
	case CodeError:
		return DecodeErrorResponse(h, payload)
	case CodeEventsOff:
		return DecodeEventsOffRequest(h)
	case CodeEventsOn:
		return DecodeEventsOnRequest(h)
	case CodeReadSync:
		return DecodeReadSyncRequest(h)
	default:
		return nil, &protoerr.RemoteProtocolError{
			Command: fmt.Sprintf("code=%d", h.Command),
			Role:    fromRole.String(),
			State:   "framing",
			Err:     fmt.Errorf("unknown command code %d", h.Command),
		}
	}
}
