/*
Package cash defines a simple token ledger holding balances and allowances of
any number of tokens.

There is no logic in the tokens, except that the balance of any account may
not go below zero and that a spender can only move funds of another account
within the allowance it was given. It plays the role of the external token
contracts the donation engine is built on.
*/
package cash
