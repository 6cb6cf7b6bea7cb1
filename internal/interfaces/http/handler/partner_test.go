package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	partnerapp "github.com/bricksflow/backend/internal/application/partner"
	"github.com/bricksflow/backend/internal/domain/partner"
	"github.com/bricksflow/backend/internal/domain/shared"
	csvimport "github.com/bricksflow/backend/internal/infrastructure/import"
	"github.com/bricksflow/backend/internal/interfaces/http/dto"
	"github.com/bricksflow/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newImportRouter(t *testing.T) (*gin.Engine, uuid.UUID, *testutil.MockScopedRepository[partner.Customer]) {
	t.Helper()
	owner, factoryID := uuid.New(), uuid.New()
	factories := new(testutil.MockFactoryRepository)
	factories.ExpectOwnedFactory(factoryID, owner)
	guard := factoryapp.NewGuard(factories)

	customers := new(testutil.MockScopedRepository[partner.Customer])
	h := NewPartnerHandler(
		partnerapp.NewCustomerService(customers, guard, zap.NewNop()),
		partnerapp.NewSupplierService(new(testutil.MockScopedRepository[partner.Supplier]), guard, zap.NewNop()),
	)

	engine := gin.New()
	engine.POST("/api/customers/factory/:factory_id/import", testutil.AuthAs(owner.String()), h.ImportCustomers)
	return engine, factoryID, customers
}

func uploadCSV(t *testing.T, engine *gin.Engine, path, field, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, "customers.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestPartnerHandler_ImportCustomers(t *testing.T) {
	engine, factoryID, customers := newImportRouter(t)
	customers.On("FindByFactory", mock.Anything, factoryID, shared.ListFilter{}).Return([]partner.Customer{}, nil)
	customers.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)

	w := uploadCSV(t, engine, "/api/customers/factory/"+factoryID.String()+"/import", "file",
		"name,phone\nRavi Traders,98765\nGopal,\n")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := testutil.DecodeData[csvimport.Result](t, w)
	assert.Equal(t, 2, res.Imported)
	assert.Empty(t, res.Errors)
	customers.AssertNumberOfCalls(t, "Save", 2)
}

func TestPartnerHandler_ImportCustomers_BadUpload(t *testing.T) {
	engine, factoryID, customers := newImportRouter(t)
	customers.On("FindByFactory", mock.Anything, factoryID, shared.ListFilter{}).Return([]partner.Customer{}, nil)
	path := "/api/customers/factory/" + factoryID.String() + "/import"

	w := uploadCSV(t, engine, path, "upload", "name\nRavi\n")
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)

	w = uploadCSV(t, engine, path, "file", "phone\n12345\n")
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
	customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
