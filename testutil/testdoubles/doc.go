// Package testdoubles provides test doubles (spies and stubs) for the interfaces used across the library:
//   - LoggerSpy: captures Logger calls per level for verification
//   - StoreStub: a persistence.Store with configurable failures
package testdoubles
