package handler

import (
	"math"
	"mime/multipart"
	"strconv"

	"github.com/labstack/echo/v4"

	"roomfoodfinder/internal/adapter/api/middleware"
	"roomfoodfinder/internal/infrastructure/storage"
	"roomfoodfinder/internal/usecase"
	"roomfoodfinder/pkg/errors"
	"roomfoodfinder/pkg/response"
	"roomfoodfinder/pkg/utils"
)

// maxImagesPerUpload caps the multipart "images" field per request.
const maxImagesPerUpload = 6

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
	store          *storage.LocalStorage
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase, store *storage.LocalStorage) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
		store:          store,
	}
}

// List is the public listings query: type/published filters plus optional
// lat/lng/radius proximity search.
func (h *ListingHandler) List(c echo.Context) error {
	input := usecase.ListListingsInput{Type: c.QueryParam("type")}

	if v := c.QueryParam("published"); v != "" {
		published := v == "true"
		input.Published = &published
	}

	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if latErr == nil && lngErr == nil {
		input.Lat = &lat
		input.Lng = &lng
		if v := c.QueryParam("radius"); v != "" {
			radius, err := strconv.ParseFloat(v, 64)
			if err != nil {
				// An unparsable radius compares false against every
				// distance, so the search matches nothing.
				radius = math.NaN()
			}
			input.RadiusKm = &radius
		}
	}

	results, err := h.listingUseCase.List(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, results)
}

func (h *ListingHandler) ListMine(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	listings, err := h.listingUseCase.ListByOwner(c.Request().Context(), user.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listings)
}

func (h *ListingHandler) Get(c echo.Context) error {
	listing, err := h.listingUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) Create(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	images, err := h.saveImages(c)
	if err != nil {
		return response.Error(c, err)
	}

	input := usecase.CreateListingInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Address:     c.FormValue("address"),
		Type:        c.FormValue("type"),
		Images:      images,
	}
	if input.Type == "" {
		input.Type = c.FormValue("category")
	}
	if input.Price, err = parseFloatField(c, "price"); err != nil {
		return response.Error(c, err)
	}
	if input.Lat, err = parseFloatField(c, "lat"); err != nil {
		return response.Error(c, err)
	}
	if input.Lng, err = parseFloatField(c, "lng"); err != nil {
		return response.Error(c, err)
	}
	if v := c.FormValue("tags"); v != "" {
		input.Tags = utils.SplitAndTrim(v)
	}
	if v := c.FormValue("amenities"); v != "" {
		input.Amenities = utils.SplitAndTrim(v)
	}

	listing, err := h.listingUseCase.Create(c.Request().Context(), user, input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, listing)
}

func (h *ListingHandler) Update(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	images, err := h.saveImages(c)
	if err != nil {
		return response.Error(c, err)
	}

	input := usecase.UpdateListingInput{NewImages: images}
	if v, present := formField(c, "title"); present {
		input.Title = &v
	}
	if v, present := formField(c, "description"); present {
		input.Description = &v
	}
	if v, present := formField(c, "address"); present {
		input.Address = &v
	}
	if v, present := formField(c, "type"); present {
		input.Type = &v
	}
	if v, present := formField(c, "published"); present {
		published := v == "true"
		input.Published = &published
	}
	if v, present := formField(c, "price"); present {
		if v == "" {
			input.ClearPrice = true
		} else {
			price, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return response.Error(c, errors.BadRequest("price must be a number", err))
			}
			input.Price = &price
		}
	}
	if input.Lat, err = parseFloatField(c, "lat"); err != nil {
		return response.Error(c, err)
	}
	if input.Lng, err = parseFloatField(c, "lng"); err != nil {
		return response.Error(c, err)
	}
	if v, present := formField(c, "tags"); present {
		input.Tags = utils.SplitAndTrim(v)
	}
	if v, present := formField(c, "amenities"); present {
		input.Amenities = utils.SplitAndTrim(v)
	}

	listing, err := h.listingUseCase.Update(c.Request().Context(), user, c.Param("id"), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) Delete(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	if err := h.listingUseCase.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{"ok": true})
}

// saveImages stores the request's "images" files, if any, and returns their
// public URLs. Requests without a multipart body are fine; they just carry no
// images.
func (h *ListingHandler) saveImages(c echo.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	files := form.File["images"]
	if len(files) > maxImagesPerUpload {
		return nil, errors.BadRequest("At most 6 images per upload", nil)
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := h.saveOne(file)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (h *ListingHandler) saveOne(file *multipart.FileHeader) (string, error) {
	url, err := h.store.Save(file)
	if err != nil {
		return "", errors.Internal("Failed to store image", err)
	}
	return url, nil
}

// formField reports whether a form field was present in the request at all,
// which is how partial updates tell "clear this" from "leave it alone".
func formField(c echo.Context, name string) (string, bool) {
	if form, err := c.MultipartForm(); err == nil {
		if values, ok := form.Value[name]; ok && len(values) > 0 {
			return values[0], true
		}
		return "", false
	}
	params, err := c.FormParams()
	if err != nil {
		return "", false
	}
	values, ok := params[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func parseFloatField(c echo.Context, name string) (*float64, error) {
	v, present := formField(c, name)
	if !present || v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, errors.BadRequest(name+" must be a number", err)
	}
	return &f, nil
}
