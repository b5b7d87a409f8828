package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	methodCheckCode  = "/petcheck.v1.Lookup/CheckCode"
	methodCheckImage = "/petcheck.v1.Lookup/CheckImage"
)

// GRPCClient calls the lookup service over gRPC. Requests and replies are
// google.protobuf.Struct values using the same field names as the HTTP API.
type GRPCClient struct {
	conn    grpc.ClientConnInterface
	closer  io.Closer
	timeout time.Duration
}

func NewGRPCClient(target string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{timeout: timeout}

	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.timeoutInterceptor),
	)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.closer = conn
	return c, nil
}

// timeoutInterceptor bounds calls that arrive without a deadline.
func (c *GRPCClient) timeoutInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (c *GRPCClient) CheckCode(ctx context.Context, q CodeQuery) (CodeResult, error) {
	req, err := structpb.NewStruct(map[string]any{
		"barcode": q.Code,
		"animal":  q.Species.WireName(),
	})
	if err != nil {
		return CodeResult{}, fmt.Errorf("build request: %w", err)
	}

	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, methodCheckCode, req, resp); err != nil {
		return CodeResult{}, c.mapError(err)
	}

	msg, _, safe := readReply(resp)
	return CodeResult{Message: msg, Verdict: verdictOf(msg, safe)}, nil
}

func (c *GRPCClient) CheckImage(ctx context.Context, q ImageQuery) (ImageResult, error) {
	req, err := structpb.NewStruct(map[string]any{
		"image":  base64.StdEncoding.EncodeToString(q.Image),
		"animal": q.Species.WireName(),
	})
	if err != nil {
		return ImageResult{}, fmt.Errorf("build request: %w", err)
	}

	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, methodCheckImage, req, resp); err != nil {
		return ImageResult{}, c.mapError(err)
	}

	msg, code, safe := readReply(resp)
	return ImageResult{Code: code, Message: msg, Verdict: verdictOf(msg, safe)}, nil
}

func (c *GRPCClient) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

func readReply(s *structpb.Struct) (result, barcode string, safe *bool) {
	f := s.GetFields()
	result = f["result"].GetStringValue()
	barcode = f["barcode"].GetStringValue()
	if v, ok := f["safe"]; ok {
		if b, isBool := v.GetKind().(*structpb.Value_BoolValue); isBool {
			safe = &b.BoolValue
		}
	}
	return result, barcode, safe
}

func (c *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	switch st.Code() {
	case codes.InvalidArgument, codes.NotFound, codes.FailedPrecondition:
		return &ServiceError{Message: st.Message()}
	default:
		return fmt.Errorf("%w: %s: %s", ErrUnavailable, st.Code(), st.Message())
	}
}
