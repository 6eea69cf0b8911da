// healthcheck 供容器探活使用，请求 /ping 并以退出码反映结果
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"sportify/internal/global/httpclient"
)

func main() {
	addr := flag.String("addr", "http://127.0.0.1:5000", "服务地址")
	prefix := flag.String("prefix", "api", "路由前缀")
	timeout := flag.Duration("timeout", 3*time.Second, "请求超时")
	flag.Parse()

	var body struct {
		Code int32 `json:"code"`
		Data struct {
			Message string `json:"message"`
			Version string `json:"version"`
		} `json:"data"`
	}
	resp, err := httpclient.New(*addr, *timeout).R().
		SetResult(&body).
		Get("/" + *prefix + "/ping")
	if err != nil {
		fmt.Fprintln(os.Stderr, "unhealthy:", err)
		os.Exit(1)
	}
	if resp.IsError() || body.Data.Message != "pong" {
		fmt.Fprintln(os.Stderr, "unhealthy: status", resp.StatusCode())
		os.Exit(1)
	}
	fmt.Println("ok", body.Data.Version)
}
