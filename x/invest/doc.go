/*
Package invest implements the investment ledger.

Each supported token has a single pool. Deposited tokens are minted on a money
market into wrapped, interest bearing shares. The ledger records the principal
of every pool, so that the interest generated since the deposit can be derived
from the current exchange rate and redeemed without ever touching the
principal.
*/
package invest
