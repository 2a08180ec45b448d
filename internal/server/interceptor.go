package server

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// UnaryGrpcRequestTimeInterceptor logs and records the duration of every call.
func UnaryGrpcRequestTimeInterceptor() grpc.UnaryServerInterceptor {
	m := metrics.Default()
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		m.ObserveRequest(info.FullMethod, start)
		logrus.Infof("request time: %v: %v (%s)", info.FullMethod, time.Since(start), status.Code(err))
		return resp, err
	}
}

func UnaryRequestTimeInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req interface{},
		reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		reqTime := time.Since(start)
		logrus.Debugf("request time: %v: %v", method, reqTime)
		return err
	}
}
