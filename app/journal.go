package app

import (
	"encoding/json"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/charity"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/orm"
)

// JournalBucketName is where we store the published events
const JournalBucketName = "journal"

// Entry is a single event persisted in the journal.
type Entry struct {
	// Sequence is the position of the entry in the journal, starting
	// with 1.
	Sequence int64 `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence"`
	// Operation is the name of the engine operation that emitted the
	// event.
	Operation string `protobuf:"bytes,2,opt,name=operation,proto3" json:"operation"`
	Kind      string `protobuf:"bytes,3,opt,name=kind,proto3" json:"kind"`
	// Payload is the JSON serialized event.
	Payload []byte `protobuf:"bytes,4,opt,name=payload,proto3" json:"payload"`
}

func (m *Entry) Reset()         { *m = Entry{} }
func (m *Entry) String() string { return proto.CompactTextString(m) }
func (*Entry) ProtoMessage()    {}

func (m *Entry) Validate() error {
	var errs error
	if m.Sequence < 1 {
		errs = errors.AppendField(errs, "Sequence", errors.ErrInput.New("must be positive"))
	}
	if m.Kind == "" {
		errs = errors.AppendField(errs, "Kind", errors.ErrInput.New("required"))
	}
	if !json.Valid(m.Payload) {
		errs = errors.AppendField(errs, "Payload", errors.ErrInput.New("invalid JSON"))
	}
	return errs
}

// Journal is an append only log of all committed events.
type Journal struct {
	bucket orm.Bucket
	seq    orm.Sequence
}

// NewJournal returns a journal with default bucket name.
func NewJournal() *Journal {
	return &Journal{
		bucket: orm.NewBucket(JournalBucketName),
		seq:    orm.NewSequence(JournalBucketName, "id"),
	}
}

// Append persists events emitted by given operation.
func (j *Journal) Append(db charity.KVStore, op string, events []charity.Event) ([]*Entry, error) {
	res := make([]*Entry, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrHuman, "cannot serialize %T event: %s", e, err)
		}
		key, err := j.seq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "journal sequence")
		}
		entry := &Entry{
			Sequence:  orm.DecodeSequence(key),
			Operation: op,
			Kind:      e.Kind(),
			Payload:   payload,
		}
		if err := j.bucket.Put(db, key, entry); err != nil {
			return nil, err
		}
		res = append(res, entry)
	}
	return res, nil
}

// Entries returns all entries of the journal, oldest first.
func (j *Journal) Entries(db charity.ReadOnlyKVStore) ([]*Entry, error) {
	it, err := j.bucket.All(db)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []*Entry
	for {
		var e Entry
		switch _, err := it.LoadNext(&e); {
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		case err != nil:
			return nil, err
		}
		res = append(res, &e)
	}
}
