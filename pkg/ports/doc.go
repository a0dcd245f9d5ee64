/*
Package ports defines the driven interfaces that carrier's adapters depend on.

These interfaces decouple the HTTP adapter, the batch runner and the CLI from the
concrete session registry.

# Contents

  - SessionRegistry: creation, lookup and current-session tracking.
  - RunSessionRegistryContract: the shared test suite every registry must pass.
*/
package ports
