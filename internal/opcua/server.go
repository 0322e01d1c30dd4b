package opcua

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/awcullen/opcua/server"
	"github.com/awcullen/opcua/ua"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	pkiDir   = "./pki"
	certFile = "./pki/server.crt"
	keyFile  = "./pki/server.key"
)

// NamespaceNodes holds the nodes registered for one machine namespace.
type NamespaceNodes struct {
	Namespace  uint16
	FolderName string
	FolderDesc string
	NodeDefs   []NodeDefinition // stored for deferred registration
	VarNodes   map[string]*server.VariableNode
	Values     map[string]interface{}
}

// Server wraps the OPC UA server and manages per-machine namespaces of
// motor telemetry nodes. If the underlying server cannot start, it
// degrades to a value store so the simulation keeps running.
type Server struct {
	srv  *server.Server
	port int
	mu   sync.RWMutex

	namespaces map[uint16]*NamespaceNodes
}

// NewServer creates a new OPC UA telemetry server.
func NewServer(port int) *Server {
	return &Server{
		port:       port,
		namespaces: make(map[uint16]*NamespaceNodes),
	}
}

// ensurePKI creates the PKI directory and self-signed certificates if
// they don't exist.
func ensurePKI(appName string) error {
	if _, err := os.Stat(certFile); err == nil {
		log.Info().Str("certFile", certFile).Msg("Using existing PKI certificates")
		return nil
	}

	log.Info().Msg("Generating self-signed certificates for OPC UA server")

	if err := os.MkdirAll(pkiDir, 0755); err != nil {
		return errors.Wrap(err, "create PKI directory")
	}
	return createSelfSignedCert(appName, certFile, keyFile)
}

func createSelfSignedCert(appName, certPath, keyPath string) error {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return errors.Wrap(err, "generate private key")
	}

	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return errors.Wrap(err, "generate serial number")
	}

	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			CommonName:   appName,
			Organization: []string{"Motor Plant Simulator"},
		},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
		DNSNames:              []string{"localhost", appName, "motorplant-simulator"},
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1"), net.ParseIP("0.0.0.0")},
	}
	template.URIs = []*url.URL{
		{Scheme: "urn", Opaque: "motorplant-simulator:factory"},
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	if err != nil {
		return errors.Wrap(err, "create certificate")
	}

	certFileHandle, err := os.Create(certPath)
	if err != nil {
		return errors.Wrap(err, "create cert file")
	}
	defer certFileHandle.Close()
	if err := pem.Encode(certFileHandle, &pem.Block{Type: "CERTIFICATE", Bytes: certDER}); err != nil {
		return errors.Wrap(err, "encode certificate")
	}

	keyFileHandle, err := os.Create(keyPath)
	if err != nil {
		return errors.Wrap(err, "create key file")
	}
	defer keyFileHandle.Close()
	keyDER := x509.MarshalPKCS1PrivateKey(privateKey)
	if err := pem.Encode(keyFileHandle, &pem.Block{Type: "RSA PRIVATE KEY", Bytes: keyDER}); err != nil {
		return errors.Wrap(err, "encode private key")
	}

	log.Info().
		Str("certPath", certPath).
		Str("keyPath", keyPath).
		Msg("Self-signed certificates generated successfully")
	return nil
}

// Start starts the OPC UA server and registers any namespaces added
// before startup.
func (s *Server) Start(ctx context.Context) error {
	endpoint := fmt.Sprintf("opc.tcp://0.0.0.0:%d", s.port)

	log.Info().
		Int("port", s.port).
		Str("endpoint", endpoint).
		Msg("Starting OPC UA server")

	if err := ensurePKI("MotorPlantSimulator"); err != nil {
		log.Warn().Err(err).Msg("Failed to create PKI - OPC UA server disabled")
		log.Info().Msg("OPC UA server disabled - running simulator in data generation mode only")
		return nil
	}

	var srv *server.Server
	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Warn().
					Interface("panic", r).
					Msg("OPC UA server creation panicked - running in value storage mode only")
			}
		}()

		var err error
		srv, err = server.New(
			ua.ApplicationDescription{
				ApplicationURI:  "urn:motorplant-simulator:factory",
				ProductURI:      "urn:motorplant-simulator",
				ApplicationName: ua.LocalizedText{Text: "Motor Plant Simulator", Locale: "en"},
				ApplicationType: ua.ApplicationTypeServer,
			},
			certFile,
			keyFile,
			endpoint,
			server.WithAnonymousIdentity(true),
			server.WithSecurityPolicyNone(true),
			server.WithInsecureSkipVerify(),
		)
		if err != nil {
			log.Warn().
				Err(err).
				Msg("OPC UA server creation failed - running in value storage mode only")
			srv = nil
		}
	}()

	if srv == nil {
		log.Info().Msg("OPC UA server disabled - running simulator in data generation mode only")
		return nil
	}

	s.srv = srv

	if err := s.registerPendingNamespaces(); err != nil {
		log.Error().Err(err).Msg("Failed to register pending namespaces")
		return err
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("OPC UA server panic")
			}
		}()
		if err := srv.ListenAndServe(); err != nil {
			log.Error().Err(err).Msg("OPC UA server error")
		}
	}()

	log.Info().Msg("OPC UA server started successfully")
	return nil
}

// Stop stops the OPC UA server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Close()
	}
	return nil
}

// RegisterNamespace creates a machine namespace with a root folder and
// one variable node per definition. Before Start, registration is
// deferred and the definitions are replayed when the server comes up.
func (s *Server) RegisterNamespace(nsIndex uint16, folderName, folderDesc string, nodes []NodeDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns := &NamespaceNodes{
		Namespace:  nsIndex,
		FolderName: folderName,
		FolderDesc: folderDesc,
		NodeDefs:   nodes,
		VarNodes:   make(map[string]*server.VariableNode),
		Values:     make(map[string]interface{}),
	}
	for _, nodeDef := range nodes {
		ns.Values[nodeDef.Name] = nodeDef.InitialValue
	}
	s.namespaces[nsIndex] = ns

	if s.srv == nil {
		return nil
	}
	return s.addNamespaceNodes(ns)
}

// addNamespaceNodes builds the folder and variable nodes in the address
// space. Caller holds the lock.
func (s *Server) addNamespaceNodes(ns *NamespaceNodes) error {
	nm := s.srv.NamespaceManager()

	folder := server.NewObjectNode(
		s.srv,
		ua.NodeIDString{NamespaceIndex: ns.Namespace, ID: ns.FolderName},
		ua.QualifiedName{NamespaceIndex: ns.Namespace, Name: ns.FolderName},
		ua.LocalizedText{Text: ns.FolderName},
		ua.LocalizedText{Text: ns.FolderDesc},
		nil,
		[]ua.Reference{
			{
				ReferenceTypeID: ua.ReferenceTypeIDOrganizes,
				IsInverse:       true,
				TargetID:        ua.ExpandedNodeID{NodeID: ua.ObjectIDObjectsFolder},
			},
		},
		0,
	)
	nm.AddNode(folder)

	for _, nodeDef := range ns.NodeDefs {
		varNode := server.NewVariableNode(
			s.srv,
			ua.NodeIDString{NamespaceIndex: ns.Namespace, ID: ns.FolderName + "." + nodeDef.Name},
			ua.QualifiedName{NamespaceIndex: ns.Namespace, Name: nodeDef.Name},
			ua.LocalizedText{Text: nodeDef.DisplayName},
			ua.LocalizedText{Text: nodeDef.Description},
			nil,
			[]ua.Reference{
				{
					ReferenceTypeID: ua.ReferenceTypeIDHasComponent,
					IsInverse:       true,
					TargetID:        ua.ExpandedNodeID{NodeID: ua.NodeIDString{NamespaceIndex: ns.Namespace, ID: ns.FolderName}},
				},
			},
			ua.NewDataValue(nodeDef.InitialValue, 0, time.Now().UTC(), 0, time.Now().UTC(), 0),
			dataTypeOf(nodeDef.InitialValue),
			ua.ValueRankScalar,
			[]uint32{},
			ua.AccessLevelsCurrentRead,
			250.0,
			false,
			nil,
		)
		nm.AddNode(varNode)
		ns.VarNodes[nodeDef.Name] = varNode
	}

	log.Info().
		Uint16("namespace", ns.Namespace).
		Str("folder", ns.FolderName).
		Int("nodes", len(ns.NodeDefs)).
		Msg("Registered OPC UA namespace")
	return nil
}

// registerPendingNamespaces replays namespaces registered before Start.
func (s *Server) registerPendingNamespaces() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodeCount := 0
	for _, ns := range s.namespaces {
		if err := s.addNamespaceNodes(ns); err != nil {
			return err
		}
		nodeCount += len(ns.NodeDefs)
	}
	log.Info().Int("count", nodeCount).Msg("OPC UA nodes registered in address space")
	return nil
}

// UpdateNamespaceValues updates node values for one machine namespace.
func (s *Server) UpdateNamespaceValues(nsIndex uint16, values map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.namespaces[nsIndex]
	if !ok {
		return
	}

	now := time.Now().UTC()
	for name, value := range values {
		ns.Values[name] = value
		if varNode, ok := ns.VarNodes[name]; ok {
			varNode.SetValue(ua.NewDataValue(value, 0, now, 0, now, 0))
		}
	}
}

// GetNamespaceValue returns a stored value from a machine namespace.
func (s *Server) GetNamespaceValue(nsIndex uint16, name string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ns, ok := s.namespaces[nsIndex]
	if !ok {
		return nil, false
	}
	value, ok := ns.Values[name]
	return value, ok
}

func dataTypeOf(initialValue interface{}) ua.NodeID {
	switch initialValue.(type) {
	case int32:
		return ua.DataTypeIDInt32
	case string:
		return ua.DataTypeIDString
	default:
		return ua.DataTypeIDDouble
	}
}
