package ports

// MessageSink is the system-originated message channel responses are
// delivered on. Lines carry no correlation identifier, so a client must
// keep at most one outstanding request per channel and read responses in
// strict FIFO order.
type MessageSink interface {
	Push(line string)
}
