package packet

import (
	"errors"

	"github.com/xvzc/netsniff/internal/proto"
)

// Walk decodes raw starting at the link layer and follows each header's
// encapsulated protocol until a resolver returns proto.Terminal, the next
// protocol is not in reg, or the remaining bytes cannot hold the next header.
//
// Walk never fails. A short header is recorded in Frame.Truncated and its
// bytes are left in the payload.
func Walk(reg *proto.Registry, raw []byte, meta Meta) *Frame {
	f := newFrame(meta, raw)

	offset := 0
	for name := proto.Ethernet; name != proto.Terminal; {
		d, err := reg.Lookup(name)
		if err != nil {
			// protocols outside the registry end the chain
			break
		}

		l, err := proto.Decode(d, raw[offset:])
		if err != nil {
			var te *proto.TruncatedHeaderError
			if errors.As(err, &te) {
				f.Truncated = te
			}
			break
		}

		f.Chain = append(f.Chain, name)
		f.Layers[name] = l
		offset += d.HeaderLen
		name = l.NextProto()
	}

	f.Payload = raw[offset:]
	if f.Payload == nil {
		f.Payload = []byte{}
	}

	return f
}
