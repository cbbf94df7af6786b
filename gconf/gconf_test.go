package gconf

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/charity"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/store"
	"github.com/iov-one/charity/weavetest/assert"
)

type MyConfig struct {
	Number int64           `protobuf:"varint,1,opt,name=number,proto3" json:"number,omitempty"`
	Text   string          `protobuf:"bytes,2,opt,name=text,proto3" json:"text,omitempty"`
	Owner  charity.Address `protobuf:"bytes,3,opt,name=owner,proto3,casttype=github.com/iov-one/charity.Address" json:"owner,omitempty"`
}

func (m *MyConfig) Reset()         { *m = MyConfig{} }
func (m *MyConfig) String() string { return proto.CompactTextString(m) }
func (*MyConfig) ProtoMessage()    {}

func (m *MyConfig) Validate() error {
	if m.Number < 0 {
		return errors.ErrInput.New("negative number")
	}
	return errors.Field("Owner", m.Owner.Validate(), "")
}

func TestSaveLoad(t *testing.T) {
	owner := charity.MustParseAddress("D2A1F84143A9754057E42DB6D6C9F986FE0FF673")

	cases := map[string]struct {
		conf        *MyConfig
		wantSaveErr *errors.Error
	}{
		"valid": {
			conf: &MyConfig{Number: 321, Text: "hello", Owner: owner},
		},
		"invalid number": {
			conf:        &MyConfig{Number: -1, Owner: owner},
			wantSaveErr: errors.ErrInput,
		},
		"invalid address": {
			conf:        &MyConfig{Number: 1, Owner: charity.Address("too short")},
			wantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.NewMemStore()
			if err := Save(db, "mine", tc.conf); !tc.wantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %+v", err)
			}
			var got MyConfig
			err := Load(db, "mine", &got)
			if tc.wantSaveErr != nil {
				assert.IsErr(t, errors.ErrNotFound, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, *tc.conf, got)
		})
	}
}

func TestInitConfig(t *testing.T) {
	const genesis = `{
		"conf": {
			"mine": {"number": 7, "text": "txt", "owner": "D2A1F84143A9754057E42DB6D6C9F986FE0FF673"}
		}
	}`
	var opts charity.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.NewMemStore()
	assert.Nil(t, InitConfig(db, opts, "mine", &MyConfig{}))

	var got MyConfig
	assert.Nil(t, Load(db, "mine", &got))
	assert.Equal(t, int64(7), got.Number)
	assert.Equal(t, "txt", got.Text)

	err := InitConfig(db, opts, "other", &MyConfig{})
	assert.IsErr(t, errors.ErrNotFound, err)
}
