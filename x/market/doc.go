/*
Package market implements a money market in the style of Compound.

Each market accepts a single underlying token and issues yield bearing
wrapped shares for it. The exchange rate of a market tells how many
underlying base units a single share is worth. A rising rate is how interest
accrues to share holders. Rates are set from the outside, which simulates
the borrowing activity of the real market.

Shares are plain cash balances under the wrapped ticker. Underlying tokens
deposited into a market are held by its reserve account, which must hold
enough funds to pay the interest it promises.
*/
package market
