/*
Package trust implements the registry of trusted beneficiaries.

Only beneficiaries registered by the administrator may receive donations.
A beneficiary is never removed from the registry. Instead it can be disabled,
and enabled again, any number of times.
*/
package trust
