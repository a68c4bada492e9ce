package networks

import "time"

const ensRegistryAddress = "0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"

var EthereumMainnet = &Chain{
	ChainID:             1,
	Name:                "mainnet",
	AltNames:            []string{"ethereum", "eth"},
	NativeSymbol:        "ETH",
	NativeDecimals:      18,
	BlockTime:           12 * time.Second,
	StableTokenAddress:  "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
	StableTokenSymbol:   "USDC",
	StableTokenDecimals: 6,
	SettlementAddress:   "0xBd3fa81B58Ba92a82136038B25aDec7066af3155",
	SettlementDomain:    0,
	NameServiceAddress:  ensRegistryAddress,
	NodeVarName:         "CUBEPAY_ETHEREUM_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"mainnet-llamarpc": "https://eth.llamarpc.com",
		"mainnet-ankr":     "https://rpc.ankr.com/eth",
	},
	ExplorerURL: "https://etherscan.io",
}

var Sepolia = &Chain{
	ChainID:             11155111,
	Name:                "sepolia",
	AltNames:            []string{"ethereum-sepolia"},
	NativeSymbol:        "ETH",
	NativeDecimals:      18,
	BlockTime:           12 * time.Second,
	StableTokenAddress:  "0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238",
	StableTokenSymbol:   "USDC",
	StableTokenDecimals: 6,
	SettlementAddress:   "0x9f3B8679c73C2Fef8b59B4f3444d4e156fb70AA5",
	SettlementDomain:    0,
	NameServiceAddress:  ensRegistryAddress,
	NodeVarName:         "CUBEPAY_SEPOLIA_NODE",
	DefaultNodes: map[string]string{
		"sepolia-public": "https://rpc.sepolia.org",
		"sepolia-ankr":   "https://rpc.ankr.com/eth_sepolia",
	},
	ExplorerURL: "https://sepolia.etherscan.io",
}

var Base = &Chain{
	ChainID:             8453,
	Name:                "base",
	NativeSymbol:        "ETH",
	NativeDecimals:      18,
	BlockTime:           2 * time.Second,
	StableTokenAddress:  "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
	StableTokenSymbol:   "USDC",
	StableTokenDecimals: 6,
	SettlementAddress:   "0x1682Ae6375C4E4A97e4B583BC394c861A46D8962",
	SettlementDomain:    6,
	NodeVarName:         "CUBEPAY_BASE_NODE",
	DefaultNodes: map[string]string{
		"base-official": "https://mainnet.base.org",
	},
	ExplorerURL: "https://basescan.org",
}

var ArbitrumOne = &Chain{
	ChainID:             42161,
	Name:                "arbitrum",
	AltNames:            []string{"arbitrum-one", "arb1"},
	NativeSymbol:        "ETH",
	NativeDecimals:      18,
	BlockTime:           time.Second,
	StableTokenAddress:  "0xaf88d065e77c8cC2239327C5EDb3A432268e5831",
	StableTokenSymbol:   "USDC",
	StableTokenDecimals: 6,
	SettlementAddress:   "0x19330d10D9Cc8751218eaf51E8885D058642E08A",
	SettlementDomain:    3,
	NodeVarName:         "CUBEPAY_ARBITRUM_NODE",
	DefaultNodes: map[string]string{
		"arbitrum-official": "https://arb1.arbitrum.io/rpc",
	},
	ExplorerURL: "https://arbiscan.io",
}

var Avalanche = &Chain{
	ChainID:             43114,
	Name:                "avalanche",
	AltNames:            []string{"avax"},
	NativeSymbol:        "AVAX",
	NativeDecimals:      18,
	BlockTime:           2 * time.Second,
	StableTokenAddress:  "0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E",
	StableTokenSymbol:   "USDC",
	StableTokenDecimals: 6,
	SettlementAddress:   "0x6B25532e1060CE10cc3B0A99e5683b91BFDe6982",
	SettlementDomain:    1,
	NodeVarName:         "CUBEPAY_AVALANCHE_NODE",
	DefaultNodes: map[string]string{
		"avalanche-official": "https://api.avax.network/ext/bc/C/rpc",
	},
	ExplorerURL: "https://snowtrace.io",
}

var Polygon = &Chain{
	ChainID:             137,
	Name:                "polygon",
	AltNames:            []string{"matic"},
	NativeSymbol:        "POL",
	NativeDecimals:      18,
	BlockTime:           2 * time.Second,
	StableTokenAddress:  "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359",
	StableTokenSymbol:   "USDC",
	StableTokenDecimals: 6,
	SettlementAddress:   "0x9daF8c91AEFAE50b9c0E69629D3F6Ca40cA3B3FE",
	SettlementDomain:    7,
	NodeVarName:         "CUBEPAY_POLYGON_NODE",
	DefaultNodes: map[string]string{
		"polygon-official": "https://polygon-rpc.com",
	},
	ExplorerURL: "https://polygonscan.com",
}

// HederaTestnet is listed for terminal display compatibility but carries no
// stable token deployment, so it must report as unsupported for settlement.
var HederaTestnet = &Chain{
	ChainID:        296,
	Name:           "hedera-testnet",
	NativeSymbol:   "HBAR",
	NativeDecimals: 18,
	BlockTime:      3 * time.Second,
	NodeVarName:    "CUBEPAY_HEDERA_TESTNET_NODE",
	DefaultNodes: map[string]string{
		"hashio-testnet": "https://testnet.hashio.io/api",
	},
	ExplorerURL: "https://hashscan.io/testnet",
}

// Insert more chains here to support more settlement targets.
var builtinChains = []*Chain{
	EthereumMainnet,
	Sepolia,
	Base,
	ArbitrumOne,
	Avalanche,
	Polygon,
	HederaTestnet,
}
