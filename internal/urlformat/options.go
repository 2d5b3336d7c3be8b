package urlformat

// GetMessageOptions binds the Toast "get message" endpoint template.
// Field names follow the upstream API's camelCase placeholders.
type GetMessageOptions struct {
	Version      string
	AppKey       string
	RequestID    string
	RecipientSeq int
}

// URLFields implements Binder
func (o GetMessageOptions) URLFields() []Field {
	return []Field{
		String("version", o.Version),
		String("appKey", o.AppKey),
		String("requestId", o.RequestID),
		Int("recipientSeq", o.RecipientSeq),
	}
}
