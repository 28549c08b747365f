// Package muhash provides an implementation of a Multiplicative Hash,
// a cryptographic data structure that allows you to have a rolling hash function
// that you can add and remove elements from, without the need to re-serialize and re-hash the whole data set.
//
// The construction realizes MuHash (Bellare-Micciancio style incremental
// hashing) over the multiplicative group modulo the 3072-bit safe prime
// P = 2^3072 - 1103717. It is a homomorphism from the free commutative
// group on 32-byte keys into that group: elements can be inserted and
// removed in any order, and any two orderings of the same multiset
// produce a bit-identical digest.
package muhash
