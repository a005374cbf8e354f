package shoptet

// Wire types for the Shoptet API. Payload field names live only in this
// package; everything leaves as normalized taxonomy items.

// ErrorPayload is the error envelope Shoptet returns alongside data
type ErrorPayload struct {
	Errors []struct {
		ErrorCode    string `json:"errorCode"`
		Message      string `json:"message"`
		InstanceName string `json:"instanceName"`
	} `json:"errors"`
}

// HasErrors reports whether the envelope carries any error entries
func (p *ErrorPayload) HasErrors() bool {
	return len(p.Errors) > 0
}

// FirstError returns the first error message, or ""
func (p *ErrorPayload) FirstError() string {
	if len(p.Errors) == 0 {
		return ""
	}
	return p.Errors[0].ErrorCode + ": " + p.Errors[0].Message
}

// FlagsResponse is the GET /api/flags payload
type FlagsResponse struct {
	ErrorPayload
	Data struct {
		Flags []FlagWire `json:"flags"`
	} `json:"data"`
}

// FlagWire is one product flag
type FlagWire struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Main  bool   `json:"main"`
}

// FilteringParametersResponse is the GET /api/filtering-parameters payload
type FilteringParametersResponse struct {
	ErrorPayload
	Data struct {
		FilteringParameters []ParameterWire `json:"filteringParameters"`
	} `json:"data"`
}

// VariantParametersResponse is the GET /api/variant-parameters payload
type VariantParametersResponse struct {
	ErrorPayload
	Data struct {
		Parameters []ParameterWire `json:"parameters"`
	} `json:"data"`
}

// ParameterWire is one parameterized attribute with its allowed values
type ParameterWire struct {
	GUID        string               `json:"guid"`
	Code        string               `json:"code"`
	Name        string               `json:"name"`
	DisplayName string               `json:"displayName"`
	Priority    *int                 `json:"priority"`
	Values      []ParameterValueWire `json:"values"`
}

// ParameterValueWire is one allowed value of a parameter
type ParameterValueWire struct {
	GUID     string `json:"guid"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Priority *int   `json:"priority"`
}

// ProductsResponse is the GET /api/products payload
type ProductsResponse struct {
	ErrorPayload
	Data struct {
		Products []ProductWire `json:"products"`
	} `json:"data"`
}

// ProductWire is one product summary. Prices arrive as decimal strings.
type ProductWire struct {
	GUID            string `json:"guid"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	CurrencyCode    string `json:"currencyCode"`
	DefaultCategory struct {
		GUID string `json:"guid"`
	} `json:"defaultCategory"`
}

// UpdateCategoryRequest is the PATCH /api/categories/{id} body
type UpdateCategoryRequest struct {
	Data UpdateCategoryData `json:"data"`
}

// UpdateCategoryData carries the updatable category fields
type UpdateCategoryData struct {
	Description       *string `json:"description,omitempty"`
	SecondDescription *string `json:"secondDescription,omitempty"`
}

// UpdateProductRequest is the PATCH /api/products/{guid} body
type UpdateProductRequest struct {
	Data UpdateProductData `json:"data"`
}

// UpdateProductData carries the updatable product fields
type UpdateProductData struct {
	DefaultCategoryGUID string `json:"defaultCategoryGuid,omitempty"`
}
