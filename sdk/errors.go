package sdk

import "github.com/faciam-dev/airtab/pkg/airerr"

// Error kinds surfaced by the service, re-exported for callers that switch
// on airerr.KindOf.
const (
	KindSchemaValidation = airerr.KindSchemaValidation
	KindNotFound         = airerr.KindNotFound
	KindInvalidParameter = airerr.KindInvalidParameter
	KindAPI              = airerr.KindAPI
)
