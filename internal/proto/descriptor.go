package proto

// Descriptor is the static shape of one protocol header.
// Descriptors are built once by NewRegistry and never modified afterwards.
type Descriptor struct {
	Name      Name
	HeaderLen int

	decode  func(b []byte) Layer
	resolve func(l Layer) Name
}

// Resolve maps the selector fields of l to the encapsulated protocol name.
func (d *Descriptor) Resolve(l Layer) Name {
	if d.resolve == nil {
		return Terminal
	}
	return d.resolve(l)
}

// Decode extracts every field of d from the first d.HeaderLen bytes of buf.
// The returned layer holds no reference to buf.
func Decode(d *Descriptor, buf []byte) (Layer, error) {
	if len(buf) < d.HeaderLen {
		return nil, &TruncatedHeaderError{
			Protocol:  d.Name,
			Needed:    d.HeaderLen,
			Available: len(buf),
		}
	}

	l := d.decode(buf[:d.HeaderLen])
	l.setNext(d.Resolve(l))

	return l, nil
}
