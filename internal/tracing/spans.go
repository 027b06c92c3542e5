package tracing

// Span attribute keys used by the catalog service.
const (
	AttrSessionID = "session.id"

	AttrCarID        = "car.id"
	AttrCarMake      = "car.make"
	AttrCarModel     = "car.model"
	AttrCarType      = "car.type"
	AttrMaxPrice     = "car.max_price"
	AttrCountyCode   = "car.county_code"
	AttrResultCount  = "result.count"
	AttrCacheHit     = "cache.hit"
	AttrChangeFields = "change.fields"
	AttrErrorMessage = "error.message"
)

// SpanPrefixCatalog prefixes every catalog operation span.
const SpanPrefixCatalog = "catalog."

// Event names recorded on catalog spans.
const (
	EventCacheFlushed = "cache.flushed"
	EventNotFound     = "car.not_found"
)
