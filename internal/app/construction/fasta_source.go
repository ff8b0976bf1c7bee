package construction

import "os"

// readFile is a thin seam over os.ReadFile so tests can substitute a
// fake filesystem without touching the Service's public API.
var readFile = os.ReadFile
