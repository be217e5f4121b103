package v1alpha1_test

import (
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/nyanko-battle/internal/handlers/battle/v1alpha1"
)

var (
	protoPackage = regexp.MustCompile(`(?m)^package ([\w.]+);`)
	protoService = regexp.MustCompile(`(?m)^service (\w+) \{`)
	protoRPC     = regexp.MustCompile(`(?m)^\s*rpc (\w+)\(google\.protobuf\.Struct\) returns \(google\.protobuf\.Struct\);`)
)

func TestServiceDescMatchesProto(t *testing.T) {
	data, err := os.ReadFile("../../../../api/proto/" + v1alpha1.BattleServiceDesc.Metadata.(string))
	require.NoError(t, err)
	proto := string(data)

	pkg := protoPackage.FindStringSubmatch(proto)
	service := protoService.FindStringSubmatch(proto)
	require.Len(t, pkg, 2)
	require.Len(t, service, 2)
	assert.Equal(t, pkg[1]+"."+service[1], v1alpha1.BattleServiceDesc.ServiceName)

	var rpcs []string
	for _, m := range protoRPC.FindAllStringSubmatch(proto, -1) {
		rpcs = append(rpcs, m[1])
	}

	var methods []string
	for _, m := range v1alpha1.BattleServiceDesc.Methods {
		methods = append(methods, m.MethodName)
	}
	assert.Equal(t, rpcs, methods)
	assert.Empty(t, v1alpha1.BattleServiceDesc.Streams)
}
