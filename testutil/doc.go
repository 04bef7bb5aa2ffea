/*
Package testutil provides shared test helpers for creditstream's unit and
property-based tests.

# Overview

testutil centralizes small pieces of test infrastructure (context
construction, polling assertions, channel draining) so test files don't
each reimplement them; the creditstream tests are its users.

# Core capabilities

  - Context helpers: TestContext / TestContextWithTimeout / CancelledContext,
    registering Cleanup automatically so contexts never leak past a test.
  - Async assertions: AssertEventuallyTrue / AssertEventuallyEqual, polling
    with a timeout for conditions driven by a background goroutine.
  - Channel helpers: WaitForChannel for a single receive with a timeout,
    DrainChannel for collecting a CreditStream consumer channel's output in
    one call.

# Example

	ctx := testutil.TestContext(t)
	results := testutil.DrainChannel(stream.Results())
*/
package testutil
