package trust

import (
	"fmt"

	"github.com/iov-one/charity"
)

// Added is emitted when a beneficiary is registered.
type Added struct {
	Name    string          `json:"name"`
	Address charity.Address `json:"address"`
}

func (Added) Kind() string { return "added" }

func (e Added) String() string {
	return fmt.Sprintf("beneficiary %q added: %s", e.Name, e.Address)
}

// Disabled is emitted every time a beneficiary is disabled.
type Disabled struct {
	Name    string          `json:"name"`
	Address charity.Address `json:"address"`
}

func (Disabled) Kind() string { return "disabled" }

func (e Disabled) String() string {
	return fmt.Sprintf("beneficiary %q disabled: %s", e.Name, e.Address)
}

// Enabled is emitted every time a beneficiary is enabled.
type Enabled struct {
	Name    string          `json:"name"`
	Address charity.Address `json:"address"`
}

func (Enabled) Kind() string { return "enabled" }

func (e Enabled) String() string {
	return fmt.Sprintf("beneficiary %q enabled: %s", e.Name, e.Address)
}
