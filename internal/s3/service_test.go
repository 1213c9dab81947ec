package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/marketixlab/invoicegen/internal/config"
	"github.com/marketixlab/invoicegen/internal/domain/invoice"
	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/marketixlab/invoicegen/internal/logger"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockObjectClient struct {
	mock.Mock
}

func (m *MockObjectClient) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	return &s3.PutObjectOutput{}, args.Error(0)
}

func (m *MockObjectClient) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockObjectClient) HeadObject(ctx context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params)
	return &s3.HeadObjectOutput{}, args.Error(0)
}

type MockPresigner struct {
	mock.Mock
}

func (m *MockPresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	args := m.Called(ctx, params)
	return &v4.PresignedHTTPRequest{URL: args.String(0)}, args.Error(1)
}

type ServiceSuite struct {
	suite.Suite
	ctx       context.Context
	client    *MockObjectClient
	presigner *MockPresigner
	service   Service
}

func TestService(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.client = &MockObjectClient{}
	s.presigner = &MockPresigner{}
	cfg := &config.S3Config{
		Enabled:   true,
		Bucket:    "invoices",
		KeyPrefix: "marketixlab",
	}
	s.service = NewServiceWithClient(cfg, s.client, s.presigner, logger.NewNopLogger())
}

func keyIs(key string) interface{} {
	return mock.MatchedBy(func(in interface{}) bool {
		switch v := in.(type) {
		case *s3.PutObjectInput:
			return *v.Key == key
		case *s3.GetObjectInput:
			return *v.Key == key
		case *s3.HeadObjectInput:
			return *v.Key == key
		}
		return false
	})
}

func (s *ServiceSuite) TestUploadDocument() {
	s.client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "invoices" &&
			*in.Key == "marketixlab/INV2025001.docx" &&
			*in.ContentType == invoice.ContentTypeDocx
	})).Return(nil)

	err := s.service.UploadDocument(s.ctx, NewDocxDocument("INV2025001", []byte("docx")))
	s.NoError(err)
	s.client.AssertExpectations(s.T())
}

func (s *ServiceSuite) TestUploadDocumentFailure() {
	s.client.On("PutObject", mock.Anything, keyIs("marketixlab/INV2025001.pdf")).
		Return(errors.New("access denied"))

	err := s.service.UploadDocument(s.ctx, NewPdfDocument("INV2025001", []byte("%PDF")))
	s.Error(err)
	s.True(ierr.IsHTTPClient(err))
}

func (s *ServiceSuite) TestUploadInvalidKind() {
	err := s.service.UploadDocument(s.ctx, &Document{ID: "INV2025001", Kind: "xlsx"})
	s.Error(err)
	s.client.AssertNotCalled(s.T(), "PutObject", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestGetPresignedUrl() {
	s.presigner.On("PresignGetObject", mock.Anything, keyIs("marketixlab/INV2025001.pdf")).
		Return("https://invoices.s3.amazonaws.com/marketixlab/INV2025001.pdf?sig", nil)

	url, err := s.service.GetPresignedUrl(s.ctx, "INV2025001", DocumentKindPdf)
	s.Require().NoError(err)
	s.Contains(url, "INV2025001.pdf")
}

func (s *ServiceSuite) TestGetDocument() {
	s.client.On("GetObject", mock.Anything, keyIs("marketixlab/INV2025001.pdf")).
		Return(&s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte("%PDF-1.7")))}, nil)

	data, err := s.service.GetDocument(s.ctx, "INV2025001", DocumentKindPdf)
	s.Require().NoError(err)
	s.Equal([]byte("%PDF-1.7"), data)
}

func (s *ServiceSuite) TestGetDocumentNotFound() {
	s.client.On("GetObject", mock.Anything, keyIs("marketixlab/INV2025009.docx")).
		Return(nil, &types.NoSuchKey{})

	_, err := s.service.GetDocument(s.ctx, "INV2025009", DocumentKindDocx)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ServiceSuite) TestExists() {
	s.client.On("HeadObject", mock.Anything, keyIs("marketixlab/INV2025001.docx")).Return(nil)
	s.client.On("HeadObject", mock.Anything, keyIs("marketixlab/INV2025002.docx")).Return(&types.NotFound{})

	ok, err := s.service.Exists(s.ctx, "INV2025001", DocumentKindDocx)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.service.Exists(s.ctx, "INV2025002", DocumentKindDocx)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ServiceSuite) TestNewServiceDisabled() {
	cfg := config.GetDefaultConfig()
	svc, err := NewService(cfg, logger.NewNopLogger())
	s.NoError(err)
	s.Nil(svc)
}
