package main

import (
	"net/http"

	"github.com/spf13/cobra"

	authhttp "github.com/BOCK-CHAIN/BockDocsBackend/auth/http"
	dochttp "github.com/BOCK-CHAIN/BockDocsBackend/documents/http"
	"github.com/BOCK-CHAIN/BockDocsBackend/gin"
)

func init() {
	RootCmd.AddCommand(&WebCmd)
}

var WebCmd = cobra.Command{
	Use:   "web",
	Short: "Start the web server",
	Long:  "Start the web server",
	Run: func(cmd *cobra.Command, args []string) {
		server := gin.New(env)

		authhttp.RegisterUserEndpoints(server, userService, jwtKey)
		dochttp.RegisterDocumentEndpoints(server, documentService, jwtKey)

		addr := cfg.Web.Addr
		if addr == "" {
			addr = ":1705"
		}

		logger.Print("server started, listening on ", addr)
		if err := http.ListenAndServe(addr, server); err != nil {
			logger.Fatal("server stopped:", err)
		}
	},
}
