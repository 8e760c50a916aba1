package adapters

import "time"

// RequestTimeout bounds every request made to an external collaborator.
// There is no automatic retry; a slow collaborator surfaces as an error
// at whichever call site can absorb it.
const RequestTimeout = 10 * time.Second
