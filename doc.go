/*
Package charity defines the interfaces and types shared by all extensions of
the pooled interest donation engine: addresses and conditions, storage
interfaces, events and the context helpers.

We pass context through context.Context between the engine and extensions.
To do so, this package defines some common keys to store info, such as the
caller identity, the logger and the event buffer.

There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) T

The actual functionality lives in the x/ extensions: x/trust (trusted
beneficiaries registry), x/invest (pooled investment ledger) and x/donation
(interest distribution). x/cash and x/market provide the token ledger and the
money market that the ledger consumes.
*/
package charity
