/*
Package donation implements the donation engine.

Depositors invest through the engine into the investment ledger. Anyone can
then distribute the interest generated by all pools among trusted
beneficiaries, split by percentages. The principal is never distributed.

Percentage shares are rounded down. The remainder is never redeemed and stays
in the pool, to be distributed by a later call.
*/
package donation
