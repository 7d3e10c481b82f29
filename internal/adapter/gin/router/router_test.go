package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"user-contact-service/internal/adapter/db/gormstore"
	"user-contact-service/internal/adapter/gin/handler"
	"user-contact-service/internal/adapter/ratelimit"
	"user-contact-service/internal/usecase/user"
)

type RouterSuite struct {
	suite.Suite
	router *gin.Engine
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

// SetupTest gives every test a freshly seeded store.
func (s *RouterSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(s.T())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.T().Cleanup(func() { _ = sqlDB.Close() })

	s.Require().NoError(gormstore.Migrate(db))
	s.Require().NoError(gormstore.Seed(context.Background(), db, log))

	uc := user.New(gormstore.NewUserRepo(db, log), log)
	s.router = SetupRouter(handler.NewUserHandler(uc, log), Options{ServiceName: "user-contact-service"}, log)
}

func (s *RouterSuite) do(method, target string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) decode(w *httptest.ResponseRecorder, dst any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), dst))
}

func (s *RouterSuite) problem(w *httptest.ResponseRecorder, status int) handler.ProblemDetails {
	s.Require().Equal(status, w.Code, w.Body.String())
	s.Equal(handler.ProblemContentType, w.Header().Get("Content-Type"))
	var p handler.ProblemDetails
	s.decode(w, &p)
	s.Equal(status, p.Status)
	return p
}

func (s *RouterSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"healthy","service":"user-contact-service"}`, w.Body.String())
	s.NotEmpty(w.Header().Get("X-Request-ID"))
}

func (s *RouterSuite) TestSwaggerDoc() {
	w := s.do(http.MethodGet, "/swagger/doc.json", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"/users/list"`)
}

func (s *RouterSuite) TestGetUser_LauraBailey() {
	w := s.do(http.MethodGet, "/users?id=1", nil)

	s.Require().Equal(http.StatusOK, w.Code)
	var dto user.UserDto
	s.decode(w, &dto)
	s.Equal("Laura", dto.GivenNames)
	s.Equal("Bailey", dto.LastName)
	s.Nil(dto.EmailAddress)
	s.Equal("Laura Bailey", dto.String())
}

func (s *RouterSuite) TestGetUser_InvalidID() {
	for _, id := range []string{"0", "-1", "-99"} {
		p := s.problem(s.do(http.MethodGet, "/users?id="+id, nil), http.StatusBadRequest)
		s.Equal("Id must be greater than 0", p.Detail)
	}
}

func (s *RouterSuite) TestGetUser_NotFound() {
	p := s.problem(s.do(http.MethodGet, "/users?id=42", nil), http.StatusNotFound)
	s.Equal("The user '42' could not be found.", p.Detail)
}

func (s *RouterSuite) TestFindUsers_Smith() {
	w := s.do(http.MethodGet, "/users/find?lastName=Smith", nil)

	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[
		{"userId":10,"givenNames":"John","lastName":"Smith","emailAddress":"john.smith@example.com","mobileNumber":"0411112222","fullName":"John Smith"},
		{"userId":11,"givenNames":"Jane","lastName":"Smith","emailAddress":"jane.smith@example.com","mobileNumber":"0422223333","fullName":"Jane Smith"}
	]`, w.Body.String())
}

func (s *RouterSuite) TestFindUsers_BlankGivenNames() {
	w := s.do(http.MethodGet, "/users/find?givenNames=%20%20%20&lastName=Smith", nil)

	s.Require().Equal(http.StatusOK, w.Code)
	var users []user.UserDto
	s.decode(w, &users)
	s.Require().Len(users, 2)
	s.Equal(int64(10), users[0].UserID)
	s.Equal(int64(11), users[1].UserID)
}

func (s *RouterSuite) TestReadsAreRepeatable() {
	for _, target := range []string{
		"/users?id=10",
		"/users/find?lastName=Smith",
		"/users/list?pageNumber=1&itemsPerPage=10",
		"/users/list?pageNumber=2&itemsPerPage=10",
	} {
		first := s.do(http.MethodGet, target, nil)
		second := s.do(http.MethodGet, target, nil)

		s.Require().Equal(http.StatusOK, first.Code, target)
		s.Equal(first.Code, second.Code, target)
		s.Equal(first.Body.String(), second.Body.String(), target)
	}
}

func (s *RouterSuite) TestCreateUser_SameBodyTwiceGivesDistinctIDs() {
	body := user.CreateUserRequest{
		GivenNames:   "Ada",
		LastName:     "Lovelace",
		EmailAddress: "ada@example.com",
		MobileNumber: "0400000000",
	}

	first := s.do(http.MethodPost, "/users", body)
	second := s.do(http.MethodPost, "/users", body)
	s.Require().Equal(http.StatusOK, first.Code)
	s.Require().Equal(http.StatusOK, second.Code)

	var a, b user.UserDto
	s.decode(first, &a)
	s.decode(second, &b)
	s.NotEqual(a.UserID, b.UserID)
	s.Equal(a.FullName, b.FullName)
}

func (s *RouterSuite) TestFindUsers_NoFilters() {
	p := s.problem(s.do(http.MethodGet, "/users/find", nil), http.StatusBadRequest)
	s.Equal("Given Names must not be empty;Last Name must not be empty", p.Detail)
}

func (s *RouterSuite) TestListUsers() {
	var page user.PaginatedUsers

	w := s.do(http.MethodGet, "/users/list?pageNumber=1", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &page)
	s.True(page.HasNextPage)
	s.Len(page.Data, 10)

	w = s.do(http.MethodGet, "/users/list?pageNumber=2", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &page)
	s.False(page.HasNextPage)
	s.Len(page.Data, 3)

	w = s.do(http.MethodGet, "/users/list?pageNumber=1&itemsPerPage=5", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &page)
	s.True(page.HasNextPage)
	s.Len(page.Data, 5)
}

func (s *RouterSuite) TestListUsers_InvalidPage() {
	for _, n := range []string{"0", "-5"} {
		p := s.problem(s.do(http.MethodGet, "/users/list?pageNumber="+n, nil), http.StatusBadRequest)
		s.Equal("Page Number must be greater than 0", p.Detail)
	}
}

func (s *RouterSuite) TestListUsers_PastTheEnd() {
	p := s.problem(s.do(http.MethodGet, "/users/list?pageNumber=3", nil), http.StatusNotFound)
	s.Equal("No users found.", p.Detail)
}

func (s *RouterSuite) TestCreateUser_ThenGet() {
	in := user.CreateUserRequest{
		GivenNames:   "Jake",
		LastName:     "Brian",
		EmailAddress: "jake.brian@example.com",
		MobileNumber: "0433334444",
	}

	w := s.do(http.MethodPost, "/users", in)
	s.Require().Equal(http.StatusOK, w.Code)
	var created user.UserDto
	s.decode(w, &created)
	s.Greater(created.UserID, int64(13))
	s.Equal("Jake Brian", created.FullName)

	w = s.do(http.MethodGet, w.Header().Get("Location"), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var stored user.UserDto
	s.decode(w, &stored)
	s.Equal(created, stored)
}

func (s *RouterSuite) TestCreateUser_MissingFields() {
	tests := []struct {
		in     user.CreateUserRequest
		detail string
	}{
		{user.CreateUserRequest{}, "Given Names must not be empty;Last Name must not be empty;Email Address must not be empty;Mobile Number must not be empty"},
		{user.CreateUserRequest{GivenNames: "Jake"}, "Last Name must not be empty;Email Address must not be empty;Mobile Number must not be empty"},
		{user.CreateUserRequest{GivenNames: "Jake", LastName: "Brian", EmailAddress: "jake.brian@example.com"}, "Mobile Number must not be empty"},
	}

	for _, tt := range tests {
		p := s.problem(s.do(http.MethodPost, "/users", tt.in), http.StatusBadRequest)
		s.Equal(tt.detail, p.Detail)
	}
}

func (s *RouterSuite) TestUpdateUser() {
	in := user.UpdateUserRequest{
		ID:           1,
		GivenNames:   "Laura",
		LastName:     "Bailey-Willingham",
		EmailAddress: "laura@example.com",
		MobileNumber: "0455556666",
	}

	w := s.do(http.MethodPut, "/users", in)
	s.Require().Equal(http.StatusOK, w.Code)
	var updated user.UserDto
	s.decode(w, &updated)
	s.Equal("Laura Bailey-Willingham", updated.FullName)
	s.Require().NotNil(updated.EmailAddress)
	s.Equal("laura@example.com", *updated.EmailAddress)

	w = s.do(http.MethodGet, "/users?id=1", nil)
	var stored user.UserDto
	s.decode(w, &stored)
	s.Equal(updated, stored)
}

func (s *RouterSuite) TestUpdateUser_Unpopulated() {
	p := s.problem(s.do(http.MethodPut, "/users", user.UpdateUserRequest{}), http.StatusBadRequest)
	s.Equal("Id must be greater than 0;Given Names must not be empty;Last Name must not be empty;Email Address must not be empty;Mobile Number must not be empty", p.Detail)
}

func (s *RouterSuite) TestUpdateUser_NotFound() {
	in := user.UpdateUserRequest{ID: 99, GivenNames: "a", LastName: "b", EmailAddress: "c", MobileNumber: "d"}
	p := s.problem(s.do(http.MethodPut, "/users", in), http.StatusNotFound)
	s.Equal("The user '99' could not be found.", p.Detail)
}

func (s *RouterSuite) TestDeleteUser() {
	w := s.do(http.MethodGet, "/users?id=10", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var expected user.UserDto
	s.decode(w, &expected)

	w = s.do(http.MethodDelete, "/users?id=10", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var deleted user.UserDto
	s.decode(w, &deleted)
	s.Equal(expected, deleted)

	s.problem(s.do(http.MethodGet, "/users?id=10", nil), http.StatusNotFound)
	s.problem(s.do(http.MethodDelete, "/users?id=10", nil), http.StatusNotFound)
}

func (s *RouterSuite) TestDeleteUser_InvalidID() {
	p := s.problem(s.do(http.MethodDelete, "/users?id=0", nil), http.StatusBadRequest)
	s.Equal("Id must be greater than 0", p.Detail)
}

func (s *RouterSuite) TestUnknownRoute() {
	s.problem(s.do(http.MethodGet, "/nope", nil), http.StatusNotFound)
}

func (s *RouterSuite) TestRateLimitedUsersGroup() {
	log := zaptest.NewLogger(s.T())
	uc := user.New(nil, log)
	limited := SetupRouter(handler.NewUserHandler(uc, log), Options{
		ServiceName: "user-contact-service",
		RateLimiter: ratelimit.NewLocal(0.001, 1, time.Minute),
	}, log)

	// The first request is rejected by validation before the nil store is touched.
	w := httptest.NewRecorder()
	limited.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users?id=0", nil))
	s.Equal(http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	limited.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users?id=0", nil))
	s.Equal(http.StatusTooManyRequests, w.Code)

	// Health is outside the limited group.
	w = httptest.NewRecorder()
	limited.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	s.Equal(http.StatusOK, w.Code)
}
